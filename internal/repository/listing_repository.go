package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"freshmarket/internal/models"
)

type ListingRepositoryImpl struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepositoryImpl {
	return &ListingRepositoryImpl{db: db}
}

func (r *ListingRepositoryImpl) Create(ctx context.Context, listing *models.Listing) error {
	query := `
        INSERT INTO listings
        (listing_id, name, description, image, price, quantity, contact_info, expiry_date,
         fifteen_days_discount, thirty_days_discount, votes, views, user_id, category_id,
         created_at, updated_at)
        VALUES
        (:listing_id, :name, :description, :image, :price, :quantity, :contact_info, :expiry_date,
         :fifteen_days_discount, :thirty_days_discount, :votes, :views, :user_id, :category_id,
         :created_at, :updated_at)
    `

	if listing.ListingID == "" {
		listing.ListingID = uuid.New().String()
	}

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, listing)
	if err != nil {
		return fmt.Errorf("ошибка при создании объявления: %w", err)
	}

	return nil
}

func (r *ListingRepositoryImpl) GetByID(ctx context.Context, listingID string) (*models.ListingJoined, error) {
	query := `
        SELECT l.*, u.name AS owner_name, c.name AS category_name
        FROM listings l
        JOIN users u ON u.user_id = l.user_id
        JOIN categories c ON c.category_id = l.category_id
        WHERE l.listing_id = $1
    `

	var listing models.ListingJoined
	err := r.db.GetContext(ctx, &listing, query, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("объявление с ID %s: %w", listingID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении объявления: %w", err)
	}

	return &listing, nil
}

func (r *ListingRepositoryImpl) GetAll(ctx context.Context) ([]models.ListingJoined, error) {
	query := `
        SELECT l.*, u.name AS owner_name, c.name AS category_name
        FROM listings l
        JOIN users u ON u.user_id = l.user_id
        JOIN categories c ON c.category_id = l.category_id
    `

	var listings []models.ListingJoined
	err := r.db.SelectContext(ctx, &listings, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении объявлений: %w", err)
	}

	return listings, nil
}

func (r *ListingRepositoryImpl) Update(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings SET
			description = :description,
			quantity = :quantity,
			contact_info = :contact_info,
			updated_at = :updated_at
		WHERE listing_id = :listing_id
	`

	listing.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, listing)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении объявления: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("объявление с ID %s: %w", listing.ListingID, ErrNotFound)
	}

	return nil
}

func (r *ListingRepositoryImpl) Delete(ctx context.Context, listingID string) error {
	// votes and comments are removed by ON DELETE CASCADE
	query := `DELETE FROM listings WHERE listing_id = $1`

	result, err := r.db.ExecContext(ctx, query, listingID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении объявления: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("объявление с ID %s: %w", listingID, ErrNotFound)
	}

	return nil
}

func (r *ListingRepositoryImpl) IncrementViews(ctx context.Context, listingID string) error {
	// relative update, safe enough for a best-effort counter
	query := `UPDATE listings SET views = views + 1 WHERE listing_id = $1`

	result, err := r.db.ExecContext(ctx, query, listingID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счётчика просмотров: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("объявление с ID %s: %w", listingID, ErrNotFound)
	}

	return nil
}
