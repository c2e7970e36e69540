package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"freshmarket/internal/models"
	"freshmarket/internal/pricing"
	"freshmarket/internal/repository"
	"freshmarket/internal/storage"
)

// ExpiryDateFormat is the calendar-date form used in responses and search.
const ExpiryDateFormat = "2006-01-02"

type ListOptions struct {
	Category string
	Search   string
	Sort     string
}

type Owner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListingSummary struct {
	ListingID  string          `json:"listingId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image"`
	Category   string          `json:"category"`
	ExpiryDate string          `json:"expiryDate"`
	Votes      int             `json:"votes"`
	Views      int             `json:"views"`
	Owner      Owner           `json:"owner"`
}

type CommentView struct {
	ID    string `json:"id"`
	Body  string `json:"body"`
	Owner string `json:"owner"`
}

type ListingDetail struct {
	ListingSummary
	Quantity    int           `json:"quantity"`
	Description string        `json:"description"`
	ContactInfo string        `json:"contactInfo"`
	IsOwner     bool          `json:"isOwner"`
	UserVote    int           `json:"userVote"`
	Comments    []CommentView `json:"comments"`
}

type CatalogService interface {
	List(ctx context.Context, opts ListOptions) ([]ListingSummary, error)
	Show(ctx context.Context, listingID, userID string) (*ListingDetail, error)
}

type catalogService struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	voteRepo     repository.VoteRepository
	commentRepo  repository.CommentRepository
	storage      storage.Storage

	now func() time.Time
}

func NewCatalogService(
	listingRepo repository.ListingRepository,
	categoryRepo repository.CategoryRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
	storage storage.Storage,
) CatalogService {
	return &catalogService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		voteRepo:     voteRepo,
		commentRepo:  commentRepo,
		storage:      storage,
		now:          time.Now,
	}
}

func (s *catalogService) List(ctx context.Context, opts ListOptions) ([]ListingSummary, error) {
	all, err := s.listingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	listings := s.sweepExpired(ctx, all, ref)

	if opts.Category != "" {
		category, err := s.categoryRepo.GetByName(ctx, opts.Category)
		if err != nil {
			return nil, err
		}

		filtered := listings[:0]
		for _, l := range listings {
			if l.CategoryID == category.CategoryID {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}

	summaries := make([]ListingSummary, 0, len(listings))
	for _, l := range listings {
		summaries = append(summaries, ListingSummary{
			ListingID:  l.ListingID,
			Name:       l.Name,
			Price:      pricing.EffectivePrice(l.Price, l.ExpiryDate, l.FifteenDaysDiscount, l.ThirtyDaysDiscount, ref),
			Image:      l.Image,
			Category:   l.CategoryName,
			ExpiryDate: l.ExpiryDate.Format(ExpiryDateFormat),
			Votes:      l.Votes,
			Views:      l.Views,
			Owner:      Owner{ID: l.UserID, Name: l.OwnerName},
		})
	}

	if opts.Search != "" {
		term := strings.ToLower(opts.Search)
		matched := summaries[:0]
		for _, s := range summaries {
			if strings.Contains(strings.ToLower(s.Name), term) ||
				strings.Contains(s.ExpiryDate, term) {
				matched = append(matched, s)
			}
		}
		summaries = matched
	}

	switch opts.Sort {
	case "price":
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Price.LessThan(summaries[j].Price)
		})
	case "expiry_date":
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].ExpiryDate < summaries[j].ExpiryDate
		})
	case "name":
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Name < summaries[j].Name
		})
	}

	return summaries, nil
}

// sweepExpired deletes every listing whose expiry date is strictly in the past
// and returns the rest. A listing expiring today is still on sale.
func (s *catalogService) sweepExpired(ctx context.Context, listings []models.ListingJoined, ref time.Time) []models.ListingJoined {
	remaining := make([]models.ListingJoined, 0, len(listings))

	for _, l := range listings {
		if pricing.DaysRemaining(l.ExpiryDate, ref) >= 0 {
			remaining = append(remaining, l)
			continue
		}

		// the shared placeholder never gets deleted from storage
		if l.Image != "" && l.Image != models.DefaultImage {
			if err := s.storage.DeleteImage(ctx, l.Image); err != nil {
				log.Printf("Предупреждение: не удалось удалить изображение %s: %v", l.Image, err)
			}
		}

		if err := s.listingRepo.Delete(ctx, l.ListingID); err != nil {
			log.Printf("Предупреждение: не удалось удалить просроченное объявление %s: %v", l.ListingID, err)
		}
	}

	return remaining
}

func (s *catalogService) Show(ctx context.Context, listingID, userID string) (*ListingDetail, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	// every read counts, best effort under concurrent sweeps
	if err := s.listingRepo.IncrementViews(ctx, listingID); err != nil {
		log.Printf("Предупреждение: не удалось увеличить счётчик просмотров %s: %v", listingID, err)
	} else {
		listing.Views++
	}

	userVote := 0
	vote, err := s.voteRepo.GetVote(ctx, userID, listingID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// no vote yet
	case err != nil:
		return nil, err
	case vote.VoteType == models.VoteUp:
		userVote = 1
	default:
		userVote = -1
	}

	comments, err := s.commentRepo.GetByListingID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	commentViews := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		commentViews = append(commentViews, CommentView{
			ID:    c.CommentID,
			Body:  c.Body,
			Owner: c.AuthorName,
		})
	}

	ref := s.now()

	return &ListingDetail{
		ListingSummary: ListingSummary{
			ListingID:  listing.ListingID,
			Name:       listing.Name,
			Price:      pricing.EffectivePrice(listing.Price, listing.ExpiryDate, listing.FifteenDaysDiscount, listing.ThirtyDaysDiscount, ref),
			Image:      listing.Image,
			Category:   listing.CategoryName,
			ExpiryDate: listing.ExpiryDate.Format(ExpiryDateFormat),
			Votes:      listing.Votes,
			Views:      listing.Views,
			Owner:      Owner{ID: listing.UserID, Name: listing.OwnerName},
		},
		Quantity:    listing.Quantity,
		Description: listing.Description,
		ContactInfo: listing.ContactInfo,
		IsOwner:     listing.UserID == userID,
		UserVote:    userVote,
		Comments:    commentViews,
	}, nil
}
