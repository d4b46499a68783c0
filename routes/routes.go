package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/amin-97/sport-vibe/handlers"
	"github.com/amin-97/sport-vibe/middleware"
	"github.com/amin-97/sport-vibe/models"
)

// SetupRoutes wires every handler into the router. Read endpoints are public;
// content management requires a writer or admin token, trade execution and
// roster seeding require admin.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	corsAllowedOrigin string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	tradeHandler *handlers.TradeHandler,
	newsHandler *handlers.NewsHandler,
	editorialHandler *handlers.EditorialHandler,
	wrestlingHandler *handlers.WrestlingHandler,
	statsHandler *handlers.StatsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	writerOrAdmin := middleware.Authorize(models.RoleWriter, models.RoleAdmin)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	router.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", userHandler.GetCurrentUser)
			r.Post("/me/avatar", userHandler.UploadAvatar)
		})
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Get("/{userID}", userHandler.GetUser)
			r.Put("/{userID}/role", userHandler.UpdateRole)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListTeams)
		r.Get("/{teamID}", teamHandler.GetTeam)
		r.Get("/abbr/{abbreviation}", teamHandler.GetTeamByAbbreviation)
		r.Get("/{teamID}/roster", teamHandler.GetTeamRoster)
		r.Get("/{teamID}/draft-picks", teamHandler.GetTeamPicks)
		r.Get("/{teamID}/salary", teamHandler.GetTeamSalary)
		r.Get("/{teamID}/trade-exceptions", tradeHandler.ListTeamExceptions)
		r.Get("/{teamID}/trades", tradeHandler.ListTeamTrades)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/{teamID}/roster", teamHandler.AddPlayer)
			r.Post("/{teamID}/draft-picks", teamHandler.AddDraftPick)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		})
	})

	router.Route("/trades", func(r chi.Router) {
		r.Get("/", tradeHandler.ListTrades)
		r.Get("/exceptions", tradeHandler.ListExceptions)
		r.Get("/{tradeID}", tradeHandler.GetTrade)
		r.Post("/validate", tradeHandler.ValidateTrade)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/execute", tradeHandler.ExecuteTrade)
		})
	})

	router.Route("/news", func(r chi.Router) {
		r.Get("/", newsHandler.ListNews)
		r.Get("/{slug}", newsHandler.GetNewsBySlug)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(writerOrAdmin)
			r.Post("/", newsHandler.CreateNews)
			r.Put("/id/{newsID}", newsHandler.UpdateNews)
			r.Post("/id/{newsID}/cover", newsHandler.UploadCover)
			r.Delete("/id/{newsID}", newsHandler.DeleteNews)
		})
	})

	router.Route("/editorials", func(r chi.Router) {
		r.Get("/", editorialHandler.ListEditorials)
		r.Get("/{slug}", editorialHandler.GetEditorialBySlug)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(writerOrAdmin)
			r.Post("/", editorialHandler.CreateEditorial)
			r.Put("/id/{editorialID}", editorialHandler.UpdateEditorial)
			r.Post("/id/{editorialID}/cover", editorialHandler.UploadCover)
			r.Delete("/id/{editorialID}", editorialHandler.DeleteEditorial)
		})
	})

	router.Route("/wrestling/results", func(r chi.Router) {
		r.Get("/", wrestlingHandler.ListResults)
		r.Get("/{slug}", wrestlingHandler.GetResultBySlug)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(writerOrAdmin)
			r.Post("/", wrestlingHandler.CreateResult)
			r.Put("/id/{resultID}", wrestlingHandler.UpdateResult)
			r.Post("/id/{resultID}/cover", wrestlingHandler.UploadCover)
			r.Delete("/id/{resultID}", wrestlingHandler.DeleteResult)
		})
	})

	router.Route("/stats", func(r chi.Router) {
		r.Get("/players/{playerID}", statsHandler.GetPlayerCareer)
		r.Get("/players/{playerID}/seasons/{seasonID}", statsHandler.GetPlayerSeason)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Post("/import", statsHandler.ImportStatLines)
		})
	})

	router.Get("/ws/trades", webSocketHandler.ServeTradeDesk)
}
