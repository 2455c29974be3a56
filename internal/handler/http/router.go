package http

import (
	"log/slog"
	"os"

	"github.com/gatherly/events-backend-go/internal/config"
	"github.com/gatherly/events-backend-go/internal/handler/http/middleware"
	"github.com/gatherly/events-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	eventHandler EventHandler,
	attendanceHandler AttendanceHandler,
	invitationHandler InvitationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gatherly-events"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.RegisterParticipant)
			r.Post("/register/organizer", authHandler.RegisterOrganizer)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Post("/verify-email", authHandler.VerifyEmail)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Route("/callback", func(r chi.Router) {
					r.Get("/google", authHandler.OAuthCallbackGoogle)
				})
			})
		})

		// Public invitation lookup (the landing page resolves the token
		// before the invitee has an account)
		r.Get("/invitations/{token}", invitationHandler.GetByToken)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/events", func(r chi.Router) {
				r.Get("/{id}", eventHandler.GetByID)
				r.Get("/{id}/seats", eventHandler.AvailableSeats)
				r.Post("/{id}/join", attendanceHandler.Join)

				// Organizer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.OrganizerOnly)
					r.Get("/", eventHandler.List)
					r.Post("/", eventHandler.Create)
					r.Put("/{id}", eventHandler.Update)
					r.Delete("/{id}", eventHandler.Delete)
					r.Get("/{id}/attendance", attendanceHandler.List)
					r.Post("/{id}/attendance/{participantID}/review", attendanceHandler.Review)
				})
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Post("/{token}/accept", invitationHandler.Accept)

				// Organizer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.OrganizerOnly)
					r.Post("/", invitationHandler.Create)
					r.Post("/resend", invitationHandler.Resend)
					r.Delete("/{id}", invitationHandler.Revoke)
				})
			})
		})
	})

	return r
}
