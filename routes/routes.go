package routes

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iamkameel/scrbrd-beta-2-sub004/handlers"
	"github.com/iamkameel/scrbrd-beta-2-sub004/middleware"
	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

// SetupRoutes mounts the full API surface. Read endpoints are public;
// roster and fixture administration needs organizer or admin, scoring
// operations accept scorers too, and role changes are admin only.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	schoolHandler *handlers.SchoolHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	officialHandler *handlers.OfficialHandler,
	sponsorHandler *handlers.SponsorHandler,
	equipmentHandler *handlers.EquipmentHandler,
	matchHandler *handlers.MatchHandler,
	standingHandler *handlers.StandingHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	organizers := middleware.RequireRole(models.RoleAdmin, models.RoleOrganizer)
	scorers := middleware.RequireRole(models.RoleAdmin, models.RoleOrganizer, models.RoleScorer)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/me", userHandler.GetMe)
		r.Put("/me", userHandler.UpdateMe)
		r.Get("/{userID}", userHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Put("/{userID}/role", userHandler.UpdateRole)
			r.Delete("/{userID}", userHandler.Delete)
		})
	})

	router.Route("/schools", func(r chi.Router) {
		r.Get("/", schoolHandler.List)
		r.Get("/{schoolID}", schoolHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", schoolHandler.Create)
			r.Put("/{schoolID}", schoolHandler.Update)
			r.Post("/{schoolID}/crest", schoolHandler.UploadCrest)
			r.Delete("/{schoolID}", schoolHandler.Delete)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/{teamID}", teamHandler.GetByID)
		r.Get("/{teamID}/players", playerHandler.ListByTeam)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", teamHandler.Create)
			r.Put("/{teamID}", teamHandler.Update)
			r.Post("/{teamID}/crest", teamHandler.UploadCrest)
			r.Delete("/{teamID}", teamHandler.Delete)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", playerHandler.Create)
			r.Put("/{playerID}", playerHandler.Update)
			r.Delete("/{playerID}", playerHandler.Delete)
		})
	})

	router.Route("/officials", func(r chi.Router) {
		r.Get("/", officialHandler.List)
		r.Get("/{officialID}", officialHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", officialHandler.Create)
			r.Put("/{officialID}", officialHandler.Update)
			r.Delete("/{officialID}", officialHandler.Delete)
		})
	})

	router.Route("/sponsors", func(r chi.Router) {
		r.Get("/", sponsorHandler.List)
		r.Get("/{sponsorID}", sponsorHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", sponsorHandler.Create)
			r.Put("/{sponsorID}", sponsorHandler.Update)
			r.Post("/{sponsorID}/logo", sponsorHandler.UploadLogo)
			r.Delete("/{sponsorID}", sponsorHandler.Delete)
		})
	})

	router.Route("/equipment", func(r chi.Router) {
		r.Get("/", equipmentHandler.List)
		r.Get("/{equipmentID}", equipmentHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", equipmentHandler.Create)
			r.Put("/{equipmentID}", equipmentHandler.Update)
			r.Delete("/{equipmentID}", equipmentHandler.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.List)
		r.Get("/{matchID}", matchHandler.GetByID)
		r.Get("/{matchID}/scorecard", matchHandler.Scorecard)
		r.Get("/{matchID}/transitions", matchHandler.ListTransitions)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", matchHandler.Create)
			r.Put("/{matchID}", matchHandler.Update)
			r.Delete("/{matchID}", matchHandler.Delete)
			r.Post("/{matchID}/postpone", matchHandler.Postpone)
			r.Post("/{matchID}/reschedule", matchHandler.Reschedule)
			r.Post("/{matchID}/cancel", matchHandler.Cancel)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, scorers)
			r.Post("/{matchID}/toss", matchHandler.RecordToss)
			r.Post("/{matchID}/innings/start", matchHandler.StartInnings)
			r.Post("/{matchID}/innings/end", matchHandler.EndInnings)
			r.Post("/{matchID}/deliveries", matchHandler.RecordDelivery)
			r.Post("/{matchID}/deliveries/{deliveryUID}/correct", matchHandler.CorrectDelivery)
			r.Post("/{matchID}/complete", matchHandler.CompleteMatch)
			r.Post("/{matchID}/abandon", matchHandler.Abandon)
		})
	})

	router.Get("/standings", standingHandler.Table)

	router.Route("/brackets", func(r chi.Router) {
		r.Get("/{season}", bracketHandler.GetBySeason)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Post("/", bracketHandler.Seed)
			r.Post("/{season}/matches", bracketHandler.AssignMatch)
			r.Delete("/{season}", bracketHandler.Delete)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeWs)
}
