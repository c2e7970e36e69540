package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"freshmarket/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, listing_id, user_id, body, created_at)
		VALUES (:comment_id, :listing_id, :user_id, :body, :created_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByListingID(ctx context.Context, listingID string) ([]models.CommentWithAuthor, error) {
	query := `
		SELECT c.*, u.name AS author_name
		FROM comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.listing_id = $1
		ORDER BY c.created_at
	`

	var comments []models.CommentWithAuthor
	err := r.db.SelectContext(ctx, &comments, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}
