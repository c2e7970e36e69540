package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"freshmarket/internal/models"
)

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &voteRepository{db: db}
}

// CastVote runs the whole read-modify-write inside one transaction. The listing
// row is locked first, so two concurrent votes on the same listing serialize
// and the counter never loses an update.
func (r *voteRepository) CastVote(ctx context.Context, userID, listingID, voteType string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var votes int
	err = tx.GetContext(ctx, &votes, `SELECT votes FROM listings WHERE listing_id = $1 FOR UPDATE`, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("объявление с ID %s: %w", listingID, ErrNotFound)
		}
		return false, fmt.Errorf("ошибка при блокировке объявления: %w", err)
	}

	var prior models.Vote
	err = tx.GetContext(ctx, &prior,
		`SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID)

	var delta int
	flipped := false

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO votes (user_id, listing_id, vote_type) VALUES ($1, $2, $3)`,
			userID, listingID, voteType)
		if err != nil {
			return false, fmt.Errorf("ошибка при сохранении голоса: %w", err)
		}
		if voteType == models.VoteUp {
			delta = 1
		} else {
			delta = -1
		}

	case err != nil:
		return false, fmt.Errorf("ошибка при получении голоса: %w", err)

	case prior.VoteType == voteType:
		return false, ErrDuplicateVote

	default:
		// flip: undo the old contribution and apply the new one in one step
		_, err = tx.ExecContext(ctx,
			`UPDATE votes SET vote_type = $1 WHERE user_id = $2 AND listing_id = $3`,
			voteType, userID, listingID)
		if err != nil {
			return false, fmt.Errorf("ошибка при обновлении голоса: %w", err)
		}
		if voteType == models.VoteUp {
			delta = 2
		} else {
			delta = -2
		}
		flipped = true
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE listings SET votes = votes + $1 WHERE listing_id = $2`,
		delta, listingID)
	if err != nil {
		return false, fmt.Errorf("ошибка при обновлении счётчика голосов: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return flipped, nil
}

func (r *voteRepository) GetVote(ctx context.Context, userID, listingID string) (*models.Vote, error) {
	var vote models.Vote

	query := `SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`

	err := r.db.GetContext(ctx, &vote, query, userID, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении голоса: %w", err)
	}

	return &vote, nil
}
