package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/devconnector/backend/internal/config"
	"github.com/devconnector/backend/internal/handlers"
	appMiddleware "github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	userService, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect user store: %v", err)
	}
	profileService, err := services.NewMongoProfileService(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect profile store: %v", err)
	}
	postService, err := services.NewMongoPostService(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect post store: %v", err)
	}
	accountService, err := services.NewMongoAccountService(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect account store: %v", err)
	}
	githubService := services.NewGithubService()

	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration)
	profileHandler := handlers.NewProfileHandler(profileService, accountService, githubService)
	postHandler := handlers.NewPostHandler(postService, userService)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))
				r.Get("/current", authHandler.Current)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			// Public reads
			r.Get("/all", profileHandler.ListAll)
			r.Get("/handle/{handle}", profileHandler.GetByHandle)
			r.Get("/user/{userId}", profileHandler.GetByUserID)
			r.Get("/github/{username}", profileHandler.GithubRepos)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))

				r.Get("/", profileHandler.GetCurrent)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.DeleteAccount)

				r.Post("/experience", profileHandler.AddExperience)
				r.Delete("/experience/{expId}", profileHandler.RemoveExperience)
				r.Post("/education", profileHandler.AddEducation)
				r.Delete("/education/{eduId}", profileHandler.RemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			// Public reads
			r.Get("/", postHandler.List)
			r.Get("/{postId}", postHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))

				r.Post("/", postHandler.Create)
				r.Delete("/{postId}", postHandler.Delete)

				r.Post("/like/{postId}", postHandler.Like)
				r.Post("/unlike/{postId}", postHandler.Unlike)

				r.Post("/comment/{postId}", postHandler.AddComment)
				r.Delete("/comment/{postId}/{commentId}", postHandler.RemoveComment)
			})
		})
	})

	log.Printf("DevConnector API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
