package service

import (
	"context"
	"fmt"

	"freshmarket/internal/models"
	"freshmarket/internal/repository"
)

type VoteService interface {
	// CastVote validates the direction and delegates to the repository
	// transaction. Reports whether an existing vote was flipped.
	CastVote(ctx context.Context, userID, listingID, voteType string) (bool, error)
}

type voteService struct {
	voteRepo repository.VoteRepository
}

func NewVoteService(voteRepo repository.VoteRepository) VoteService {
	return &voteService{voteRepo: voteRepo}
}

func (s *voteService) CastVote(ctx context.Context, userID, listingID, voteType string) (bool, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return false, fmt.Errorf("тип голоса должен быть up или down: %w", repository.ErrValidation)
	}

	return s.voteRepo.CastVote(ctx, userID, listingID, voteType)
}
