package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"

	"freshmarket/internal/models"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query := `SELECT * FROM categories ORDER BY name`

	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	query := `SELECT * FROM categories WHERE name = $1`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("категория %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}
