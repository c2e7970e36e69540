package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"freshmarket/cmd/app"
	"freshmarket/internal/config"
	"freshmarket/internal/database"
	handlers "freshmarket/internal/handler"
	"freshmarket/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/tables", handler.TablesHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)
	router.HandleFunc("/api/categories", handler.GetCategories).Methods(http.MethodGet)

	router.HandleFunc("/api/listings", handler.GetListings).Methods(http.MethodGet)
	router.HandleFunc("/api/listings", handler.CreateListing).Methods(http.MethodPost)
	router.HandleFunc("/api/listings/{id}", handler.GetListing).Methods(http.MethodGet)
	router.HandleFunc("/api/listings/{id}", handler.UpdateListing).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc("/api/listings/{id}", handler.DeleteListing).Methods(http.MethodDelete)

	router.HandleFunc("/api/listings/{id}/vote", handler.CastVote).Methods(http.MethodPost)
	router.HandleFunc("/api/listings/{id}/comments", handler.AddComment).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
