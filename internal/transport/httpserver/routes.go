package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"finance-app-go/internal/config"
	"finance-app-go/internal/transport/httpserver/handler"
	authmw "finance-app-go/internal/transport/httpserver/middleware"
	"finance-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/signup", handlers.AuthSignup)
		r.Post("/auth/login", handlers.AuthLogin)

		auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/assets", handlers.ListAssets)
			r.Post("/assets", handlers.CreateAsset)
			r.Get("/assets/{id}", handlers.GetAsset)
			r.Put("/assets/{id}", handlers.UpdateAsset)
			r.Delete("/assets/{id}", handlers.DeleteAsset)

			r.Get("/expenses", handlers.ListExpenses)
			r.Post("/expenses", handlers.CreateExpense)
			r.Put("/expenses/{id}", handlers.UpdateExpense)
			r.Delete("/expenses/{id}", handlers.DeleteExpense)

			r.Get("/family-members", handlers.ListFamilyMembers)
			r.Post("/family-members", handlers.CreateFamilyMember)
			r.Put("/family-members/{id}", handlers.UpdateFamilyMember)
			r.Delete("/family-members/{id}", handlers.DeleteFamilyMember)

			r.Get("/chat/{context}/messages", handlers.ListChatMessages)
			r.Post("/chat/{context}/messages", handlers.SendChatMessage)
			r.Delete("/chat/{context}/messages", handlers.ClearChatMessages)

			r.Get("/portfolio/summary", handlers.PortfolioSummary)
		})
	})

	return r
}
