package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshmarket/internal/models"
)

func newVoteRepoMock(t *testing.T) (VoteRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewVoteRepository(sqlxDB), mock, func() { db.Close() }
}

func TestVoteRepository_CastVote_FirstVote(t *testing.T) {
	repo, mock, closeDB := newVoteRepoMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT votes FROM listings WHERE listing_id = $1 FOR UPDATE`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"votes"}).AddRow(3))
	mock.ExpectQuery(`SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`).
		WithArgs("u1", "l1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO votes (user_id, listing_id, vote_type) VALUES ($1, $2, $3)`).
		WithArgs("u1", "l1", "up").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE listings SET votes = votes + $1 WHERE listing_id = $2`).
		WithArgs(1, "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	flipped, err := repo.CastVote(context.Background(), "u1", "l1", models.VoteUp)

	assert.NoError(t, err)
	assert.False(t, flipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_CastVote_FirstDownVote(t *testing.T) {
	repo, mock, closeDB := newVoteRepoMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT votes FROM listings WHERE listing_id = $1 FOR UPDATE`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"votes"}).AddRow(0))
	mock.ExpectQuery(`SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`).
		WithArgs("u1", "l1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO votes (user_id, listing_id, vote_type) VALUES ($1, $2, $3)`).
		WithArgs("u1", "l1", "down").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE listings SET votes = votes + $1 WHERE listing_id = $2`).
		WithArgs(-1, "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	flipped, err := repo.CastVote(context.Background(), "u1", "l1", models.VoteDown)

	assert.NoError(t, err)
	assert.False(t, flipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_CastVote_Duplicate(t *testing.T) {
	repo, mock, closeDB := newVoteRepoMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT votes FROM listings WHERE listing_id = $1 FOR UPDATE`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"votes"}).AddRow(1))
	mock.ExpectQuery(`SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`).
		WithArgs("u1", "l1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "listing_id", "vote_type"}).
			AddRow("u1", "l1", "up"))
	mock.ExpectRollback()

	flipped, err := repo.CastVote(context.Background(), "u1", "l1", models.VoteUp)

	// повторный голос не меняет счётчик
	assert.ErrorIs(t, err, ErrDuplicateVote)
	assert.False(t, flipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_CastVote_FlipAdjustsByTwo(t *testing.T) {
	repo, mock, closeDB := newVoteRepoMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT votes FROM listings WHERE listing_id = $1 FOR UPDATE`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"votes"}).AddRow(1))
	mock.ExpectQuery(`SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`).
		WithArgs("u1", "l1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "listing_id", "vote_type"}).
			AddRow("u1", "l1", "up"))
	mock.ExpectExec(`UPDATE votes SET vote_type = $1 WHERE user_id = $2 AND listing_id = $3`).
		WithArgs("down", "u1", "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE listings SET votes = votes + $1 WHERE listing_id = $2`).
		WithArgs(-2, "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	flipped, err := repo.CastVote(context.Background(), "u1", "l1", models.VoteDown)

	assert.NoError(t, err)
	assert.True(t, flipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_CastVote_ListingNotFound(t *testing.T) {
	repo, mock, closeDB := newVoteRepoMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT votes FROM listings WHERE listing_id = $1 FOR UPDATE`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CastVote(context.Background(), "u1", "missing", models.VoteUp)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_GetVote(t *testing.T) {
	repo, mock, closeDB := newVoteRepoMock(t)
	defer closeDB()

	t.Run("голос найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`).
			WithArgs("u1", "l1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "listing_id", "vote_type"}).
				AddRow("u1", "l1", "down"))

		vote, err := repo.GetVote(context.Background(), "u1", "l1")

		assert.NoError(t, err)
		assert.Equal(t, models.VoteDown, vote.VoteType)
	})

	t.Run("голоса нет", func(t *testing.T) {
		mock.ExpectQuery(`SELECT user_id, listing_id, vote_type FROM votes WHERE user_id = $1 AND listing_id = $2`).
			WithArgs("u1", "l2").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetVote(context.Background(), "u1", "l2")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
