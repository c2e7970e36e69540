package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"freshmarket/internal/service"
)

type UpdateListingRequest struct {
	Description *string `json:"description" validate:"omitempty"`
	Quantity    *int    `json:"quantity" validate:"omitempty,min=0"`
	ContactInfo *string `json:"contactInfo" validate:"omitempty"`
}

func (h *Handlers) GetListings(w http.ResponseWriter, r *http.Request) {
	opts := service.ListOptions{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Sort:     r.URL.Query().Get("sort"),
	}

	summaries, err := h.CatalogService.List(r.Context(), opts)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, summaries, http.StatusOK)
}

func (h *Handlers) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	detail, err := h.CatalogService.Show(r.Context(), listingID, userID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, detail, http.StatusOK)
}

// CreateListing accepts multipart/form-data: the listing fields plus an
// optional "image" file.
func (h *Handlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		WriteError(w, "Неверный формат цены", http.StatusBadRequest)
		return
	}

	expiryDate, err := time.Parse(service.ExpiryDateFormat, r.FormValue("expiry_date"))
	if err != nil {
		WriteError(w, "Неверный формат срока годности, ожидается ГГГГ-ММ-ДД", http.StatusBadRequest)
		return
	}

	quantity := 1
	if v := r.FormValue("quantity"); v != "" {
		quantity, err = strconv.Atoi(v)
		if err != nil {
			WriteError(w, "Неверный формат количества", http.StatusBadRequest)
			return
		}
	}

	fifteen, err := strconv.Atoi(r.FormValue("fifteen_days_discount"))
	if err != nil {
		WriteError(w, "Неверный формат скидки 15 дней", http.StatusBadRequest)
		return
	}

	thirty, err := strconv.Atoi(r.FormValue("thirty_days_discount"))
	if err != nil {
		WriteError(w, "Неверный формат скидки 30 дней", http.StatusBadRequest)
		return
	}

	req := service.CreateListingRequest{
		UserID:              userID,
		Name:                r.FormValue("name"),
		Description:         r.FormValue("description"),
		Price:               price,
		Quantity:            quantity,
		ContactInfo:         r.FormValue("contact_info"),
		ExpiryDate:          expiryDate,
		FifteenDaysDiscount: fifteen,
		ThirtyDaysDiscount:  thirty,
		Category:            r.FormValue("category"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		req.ImageFile = file
		req.ImageFileName = header.Filename
		req.ImageSize = header.Size
	}

	listing, err := h.ListingService.CreateListing(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, listing, http.StatusCreated)
}

func (h *Handlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	listing, err := h.ListingService.UpdateListing(r.Context(), service.UpdateListingRequest{
		ListingID:   listingID,
		UserID:      userID,
		Description: req.Description,
		Quantity:    req.Quantity,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, listing, http.StatusOK)
}

func (h *Handlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.ListingService.DeleteListing(r.Context(), listingID, userID); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Объявление успешно удалено"}, http.StatusOK)
}
