package handlers

import (
	"github.com/go-playground/validator/v10"

	"freshmarket/internal/config"
	"freshmarket/internal/repository"
	"freshmarket/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	CatalogService service.CatalogService
	ListingService service.ListingService
	VoteService    service.VoteService
	CommentService service.CommentService
	UserRepo       repository.UserRepository
	CategoryRepo   repository.CategoryRepository
	TablesRepo     repository.TablesRepository
	TablesService  service.TablesService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		CatalogService: service.Catalog,
		ListingService: service.Listing,
		VoteService:    service.Vote,
		CommentService: service.Comment,
		UserRepo:       repo.User,
		CategoryRepo:   repo.Category,
		TablesRepo:     repo.Tables,
		TablesService:  service.Tables,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
