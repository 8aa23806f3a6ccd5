package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"andhrawala/internal/handlers"
	"andhrawala/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.CorsMiddleware(s.cfg.AllowedOrigins))
	r.Use(middlewares.PrometheusMiddleware)
	r.Use(s.rateLimiter.Middleware)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloHandler)
	r.HandleFunc("/health", ch.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	s.registerAuthRoutes(r)
	s.registerMediaRoutes(r)

	return r
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	ah := handlers.NewAuthHandler(s.authService, s.otpService)

	r.HandleFunc("/api/signup", ah.Signup).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/login", ah.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/send-otp", ah.SendOTP).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/verify-otp", ah.VerifyOTP).Methods("POST", "OPTIONS")
}

func (s *Server) registerMediaRoutes(r *mux.Router) {
	mh := handlers.NewMediaHandler(s.mediaService)
	auth := middlewares.AuthMiddleware(s.sessionRepo)

	r.Handle("/api/movies", auth(http.HandlerFunc(mh.ListMovies))).Methods("GET", "OPTIONS")
	r.Handle("/video/{name}", auth(http.HandlerFunc(mh.StreamVideo))).Methods("GET", "OPTIONS")
}
