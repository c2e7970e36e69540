package service

import (
	"freshmarket/internal/config"
	"freshmarket/internal/repository"
	"freshmarket/internal/storage"
)

type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Listing ListingService
	Vote    VoteService
	Comment CommentService
	Tables  TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		Catalog: NewCatalogService(rep.Listing, rep.Category, rep.Vote, rep.Comment, storage),
		Listing: NewListingService(rep.Listing, rep.Category, storage, cfg),
		Vote:    NewVoteService(rep.Vote),
		Comment: NewCommentService(rep.Comment, rep.Listing),
		Tables:  NewTablesService(rep.Tables),
	}
}
