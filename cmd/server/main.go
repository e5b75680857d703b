package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"slotbooker/internal/api"
	"slotbooker/internal/auth"
	"slotbooker/internal/config"
	"slotbooker/internal/db"
	"slotbooker/internal/gcal"
	"slotbooker/internal/repository"
	"slotbooker/internal/service"
)

func initLogger(env string) {
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	initLogger(cfg.Environment)

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open DB")
	}
	if err := database.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	if err := db.InitDB(database); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	sched := service.ScheduleConfig{
		SlotDuration:   time.Duration(cfg.SlotDurationMinutes) * time.Minute,
		StartHourLocal: cfg.BusinessStartHour,
		EndHourLocal:   cfg.BusinessEndHour,
		UTCOffsetHours: cfg.BusinessUTCOffsetHour,
		LookaheadDays:  cfg.LookaheadDays,
	}

	oauthConfig := gcal.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.RedirectURI)
	tokenStore := gcal.NewTokenStore(cfg.TokenFile)
	creds := service.NewCredentialService(oauthConfig, tokenStore)

	newCalendar := func(ctx context.Context, httpClient *http.Client) (service.CalendarClient, error) {
		return gcal.NewClient(ctx, httpClient, cfg.GoogleCalendarID)
	}

	slotRepo := repository.NewSlotRepository(database)
	sender := service.NewSenderService(cfg.SendgridAPIKey, cfg.FromEmail, cfg.FromName)

	availabilitySvc := service.NewAvailabilityService(slotRepo, creds, newCalendar, sched)
	bookingSvc := service.NewBookingService(slotRepo, creds, newCalendar, sender, sched)
	jobSvc := service.NewSlotJobService(slotRepo, sched)
	adminSvc := service.NewAdminService(slotRepo)
	adminAuthSvc := service.NewAdminAuthService(repository.NewAdminAuthRepository(database), cfg.JWTSecret)

	slotHandler := api.NewSlotHandler(availabilitySvc, bookingSvc)
	authHandler := api.NewAuthHandler(oauthConfig, tokenStore)
	adminHandler := api.NewAdminHandler(adminSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	// Nudge the operator towards the consent screen when no usable
	// credential is on disk yet.
	if _, err := creds.Resolve(context.Background()); err != nil {
		log.Warn().Str("authorize_url", oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)).
			Msg("Google Calendar credentials not found or invalid. Please authorize the app.")
	} else {
		log.Info().Msg("Google Calendar credentials loaded and valid")
	}

	if err := jobSvc.GenerateUpcomingSlots(); err != nil {
		log.Error().Err(err).Msg("initial slot pre-generation failed")
	}
	scheduler := cron.New()
	scheduler.AddFunc("@daily", func() {
		if err := jobSvc.GenerateUpcomingSlots(); err != nil {
			log.Error().Err(err).Msg("scheduled slot pre-generation failed")
		}
	})
	scheduler.Start()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/", slotHandler.Root).Methods("GET")
	r.HandleFunc("/api/slots", slotHandler.GetSlots).Methods("GET")
	r.HandleFunc("/api/slots/{slot_id}/book", slotHandler.BookSlot).Methods("POST")
	r.HandleFunc("/auth/google", authHandler.GoogleLogin).Methods("GET")
	r.HandleFunc("/auth/google/callback", authHandler.GoogleCallback).Methods("GET")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/slots", adminHandler.ListSlots).Methods("GET")

	origins := []string{"http://localhost:3000"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	log.Info().Str("port", cfg.Port).Msg("server running")
	if err := http.ListenAndServe(":"+cfg.Port, cors(r)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
