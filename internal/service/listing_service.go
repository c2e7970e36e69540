package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"freshmarket/internal/config"
	"freshmarket/internal/models"
	"freshmarket/internal/pricing"
	"freshmarket/internal/repository"
	"freshmarket/internal/storage"
)

type CreateListingRequest struct {
	UserID              string
	Name                string
	Description         string
	Price               decimal.Decimal
	Quantity            int
	ContactInfo         string
	ExpiryDate          time.Time
	FifteenDaysDiscount int
	ThirtyDaysDiscount  int
	Category            string

	// optional image upload
	ImageFileName string
	ImageFile     io.Reader
	ImageSize     int64
}

type UpdateListingRequest struct {
	ListingID   string
	UserID      string
	Description *string
	Quantity    *int
	ContactInfo *string
}

type ListingService interface {
	CreateListing(ctx context.Context, req CreateListingRequest) (*models.Listing, error)
	UpdateListing(ctx context.Context, req UpdateListingRequest) (*models.Listing, error)
	DeleteListing(ctx context.Context, listingID, userID string) error
}

type listingService struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	storage      storage.Storage
	cfg          *config.Config

	now func() time.Time
}

func NewListingService(
	listingRepo repository.ListingRepository,
	categoryRepo repository.CategoryRepository,
	storage storage.Storage,
	cfg *config.Config,
) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *listingService) CreateListing(ctx context.Context, req CreateListingRequest) (*models.Listing, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByName(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("категория не существует: %w", repository.ErrValidation)
	}

	listing := &models.Listing{
		Name:                req.Name,
		Description:         req.Description,
		Image:               models.DefaultImage,
		Price:               req.Price,
		Quantity:            req.Quantity,
		ContactInfo:         req.ContactInfo,
		ExpiryDate:          req.ExpiryDate,
		FifteenDaysDiscount: req.FifteenDaysDiscount,
		ThirtyDaysDiscount:  req.ThirtyDaysDiscount,
		UserID:              req.UserID,
		CategoryID:          category.CategoryID,
	}

	if req.ImageFile != nil {
		// the id is needed for the object key, generate it before the insert
		listing.ListingID = uuid.New().String()

		objectName, err := s.storage.UploadImage(ctx, listing.ListingID, req.ImageFileName, req.ImageFile, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения в MinIO: %w", err)
		}
		listing.Image = objectName
	}

	err = s.listingRepo.Create(ctx, listing)
	if err != nil {
		if listing.Image != models.DefaultImage {
			if delErr := s.storage.DeleteImage(ctx, listing.Image); delErr != nil {
				log.Printf("Предупреждение: не удалось удалить изображение %s: %v", listing.Image, delErr)
			}
		}
		return nil, err
	}

	return listing, nil
}

func (s *listingService) validateCreate(req CreateListingRequest) error {
	switch {
	case req.Name == "":
		return fmt.Errorf("название обязательно: %w", repository.ErrValidation)
	case req.ContactInfo == "":
		return fmt.Errorf("контактная информация обязательна: %w", repository.ErrValidation)
	case req.Price.IsNegative():
		return fmt.Errorf("цена не может быть отрицательной: %w", repository.ErrValidation)
	case req.Quantity < 0:
		return fmt.Errorf("количество не может быть отрицательным: %w", repository.ErrValidation)
	case req.FifteenDaysDiscount < 0 || req.FifteenDaysDiscount > 100:
		return fmt.Errorf("скидка 15 дней должна быть от 0 до 100: %w", repository.ErrValidation)
	case req.ThirtyDaysDiscount < 0 || req.ThirtyDaysDiscount > 100:
		return fmt.Errorf("скидка 30 дней должна быть от 0 до 100: %w", repository.ErrValidation)
	case pricing.DaysRemaining(req.ExpiryDate, s.now()) <= 0:
		return fmt.Errorf("срок годности должен быть позже сегодняшнего дня: %w", repository.ErrValidation)
	}
	return nil
}

func (s *listingService) UpdateListing(ctx context.Context, req UpdateListingRequest) (*models.Listing, error) {
	existing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	if existing.UserID != req.UserID {
		return nil, fmt.Errorf("вы не владелец этого объявления: %w", repository.ErrForbidden)
	}

	listing := existing.Listing

	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("количество не может быть отрицательным: %w", repository.ErrValidation)
		}
		listing.Quantity = *req.Quantity
	}
	if req.ContactInfo != nil {
		listing.ContactInfo = *req.ContactInfo
	}

	err = s.listingRepo.Update(ctx, &listing)
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

func (s *listingService) DeleteListing(ctx context.Context, listingID, userID string) error {
	existing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return fmt.Errorf("вы не владелец этого объявления: %w", repository.ErrForbidden)
	}

	// the asset is recoverable, the row is not: storage failure never blocks deletion
	if existing.Image != "" && existing.Image != models.DefaultImage {
		if err := s.storage.DeleteImage(ctx, existing.Image); err != nil {
			log.Printf("Предупреждение: не удалось удалить изображение %s: %v", existing.Image, err)
		}
	}

	return s.listingRepo.Delete(ctx, listingID)
}
