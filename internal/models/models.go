package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImage is the placeholder used when a listing has no uploaded image.
// It is shared between listings and is never removed from storage.
const DefaultImage = "default.png"

// Vote directions.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Name                   string    `json:"name" db:"name"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
}

type Category struct {
	CategoryID string `json:"categoryId" db:"category_id"`
	Name       string `json:"name" db:"name"`
}

type Listing struct {
	ListingID           string          `json:"listingId" db:"listing_id"`
	Name                string          `json:"name" db:"name"`
	Description         string          `json:"description" db:"description"`
	Image               string          `json:"image" db:"image"`
	Price               decimal.Decimal `json:"price" db:"price"`
	Quantity            int             `json:"quantity" db:"quantity"`
	ContactInfo         string          `json:"contactInfo" db:"contact_info"`
	ExpiryDate          time.Time       `json:"expiryDate" db:"expiry_date"`
	FifteenDaysDiscount int             `json:"fifteenDaysDiscount" db:"fifteen_days_discount"`
	ThirtyDaysDiscount  int             `json:"thirtyDaysDiscount" db:"thirty_days_discount"`
	Votes               int             `json:"votes" db:"votes"`
	Views               int             `json:"views" db:"views"`
	UserID              string          `json:"userId" db:"user_id"`
	CategoryID          string          `json:"categoryId" db:"category_id"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time       `json:"updatedAt" db:"updated_at"`
}

// ListingJoined is a listing row together with its owner and category names,
// as returned by the list/detail queries.
type ListingJoined struct {
	Listing
	OwnerName    string `json:"ownerName" db:"owner_name"`
	CategoryName string `json:"categoryName" db:"category_name"`
}

type Vote struct {
	UserID    string `json:"userId" db:"user_id"`
	ListingID string `json:"listingId" db:"listing_id"`
	VoteType  string `json:"voteType" db:"vote_type"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	ListingID string    `json:"listingId" db:"listing_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CommentWithAuthor is a comment row joined with the author's display name.
type CommentWithAuthor struct {
	Comment
	AuthorName string `json:"authorName" db:"author_name"`
}
