package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"freshmarket/internal/models"
	"freshmarket/internal/repository"
)

// MaxCommentLength bounds the comment body in characters.
const MaxCommentLength = 255

type CommentService interface {
	AddComment(ctx context.Context, listingID, userID, body string) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	listingRepo repository.ListingRepository
}

func NewCommentService(commentRepo repository.CommentRepository, listingRepo repository.ListingRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		listingRepo: listingRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, listingID, userID, body string) (*models.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("текст комментария обязателен: %w", repository.ErrValidation)
	}

	if utf8.RuneCountInString(body) > MaxCommentLength {
		return nil, fmt.Errorf("комментарий не может быть длиннее %d символов: %w", MaxCommentLength, repository.ErrValidation)
	}

	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ListingID: listingID,
		UserID:    userID,
		Body:      body,
	}

	err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}
