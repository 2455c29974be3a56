package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gatherly/events-backend-go/internal/config"
	appHTTP "github.com/gatherly/events-backend-go/internal/handler/http"
	"github.com/gatherly/events-backend-go/internal/pkg/clock"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/gatherly/events-backend-go/internal/pkg/email"
	"github.com/gatherly/events-backend-go/internal/pkg/jwt"
	"github.com/gatherly/events-backend-go/internal/pkg/oauth"
	"github.com/gatherly/events-backend-go/internal/repository/postgresql"
	attendanceService "github.com/gatherly/events-backend-go/internal/service/attendance"
	authService "github.com/gatherly/events-backend-go/internal/service/auth"
	"github.com/gatherly/events-backend-go/internal/service/capacity"
	eventService "github.com/gatherly/events-backend-go/internal/service/event"
	invitationService "github.com/gatherly/events-backend-go/internal/service/invitation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	participantRepo := postgresql.NewParticipantRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	systemClock := clock.System()

	ledger := capacity.NewLedger(attendanceRepo)
	invitationSvc := invitationService.NewInvitationService(
		invitationRepo,
		userRepo,
		participantRepo,
		companyRepo,
		emailService,
		txManager,
		systemClock,
		cfg.Invitation.Expiry,
		cfg.App.FrontendURL,
	)
	authSvc := authService.NewAuthService(
		userRepo,
		companyRepo,
		participantRepo,
		refreshTokenRepo,
		invitationSvc,
		jwtService,
		emailService,
		txManager,
		cfg.App.FrontendURL,
	)
	eventSvc := eventService.NewEventService(eventRepo, attendanceRepo, ledger, txManager)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, eventRepo, ledger, txManager, systemClock)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService, googleService, cfg.App.FrontendURL)
	eventHandler := appHTTP.NewEventHandler(eventSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	invitationHandler := appHTTP.NewInvitationHandler(invitationSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		eventHandler,
		attendanceHandler,
		invitationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
