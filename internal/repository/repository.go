package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"freshmarket/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, listingID string) (*models.ListingJoined, error)
	GetAll(ctx context.Context) ([]models.ListingJoined, error)
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, listingID string) error
	IncrementViews(ctx context.Context, listingID string) error
}

type VoteRepository interface {
	// CastVote records or flips the caller's vote and adjusts the listing
	// counter in one transaction. Reports whether an existing vote was flipped.
	CastVote(ctx context.Context, userID, listingID, voteType string) (bool, error)
	GetVote(ctx context.Context, userID, listingID string) (*models.Vote, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByListingID(ctx context.Context, listingID string) ([]models.CommentWithAuthor, error)
}

type TablesRepository interface {
	CountTablesDB() (int, error)
}

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Listing  ListingRepository
	Vote     VoteRepository
	Comment  CommentRepository
	Tables   TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
		Listing:  NewListingRepository(db),
		Vote:     NewVoteRepository(db),
		Comment:  NewCommentRepository(db),
		Tables:   NewTablesRepository(db),
	}
}
