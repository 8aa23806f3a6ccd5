package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"andhrawala/internal/config"
	"andhrawala/internal/database"
	"andhrawala/internal/middlewares"
	"andhrawala/internal/repositories"
	"andhrawala/internal/services"
)

type Server struct {
	cfg          *config.Config
	httpServer   *http.Server
	db           database.Service
	sessionRepo  repositories.SessionRepository
	authService  services.AuthService
	otpService   services.OTPService
	mediaService services.MediaService
	rateLimiter  *middlewares.RateLimiter
}

func NewServer(cfg *config.Config) *Server {
	db := database.New(cfg.UsersFile)

	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository()
	sessionRepo := repositories.NewSessionRepository()

	emailService := services.NewEmailService(cfg)
	mediaService := services.NewMediaService(cfg.MediaDir, cfg.MediaExts)
	if err := mediaService.EnsureDir(); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.MediaDir).Msg("Failed to prepare media directory")
	}

	s := &Server{
		cfg:          cfg,
		db:           db,
		sessionRepo:  sessionRepo,
		authService:  services.NewAuthService(userRepo, sessionRepo),
		otpService:   services.NewOTPService(otpRepo, emailService, cfg.OTPTTL),
		mediaService: mediaService,
		rateLimiter:  middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.RegisterRoutes(),
		IdleTimeout: time.Minute,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: video streams legitimately outlive any sane
		// fixed deadline.
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.cfg.Port).Str("media_dir", s.cfg.MediaDir).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
