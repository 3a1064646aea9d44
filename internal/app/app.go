package app

import (
	"net/http"
	"resetpass/internal/app/deps"
	"resetpass/internal/app/services"
	"resetpass/internal/http/handlers/reset/check"
	"resetpass/internal/http/handlers/reset/confirm"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	resetRouter := chi.NewRouter()
	resetRouter.Method(http.MethodPost, "/check", check.New(s.RequestReset))
	resetRouter.Method(http.MethodGet, "/confirm", confirm.New(s.ConfirmReset))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/reset", resetRouter)

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.ListenAddress,
	}
}
