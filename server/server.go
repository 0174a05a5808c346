package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lotocart/application"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// Server exposes the purchase flow over HTTP
type Server struct {
	checkout   *application.CheckoutService
	validate   *validator.Validate
	httpServer *http.Server
}

// NewServer creates a new HTTP server for the purchase flow
func NewServer(listenAddr string, checkout *application.CheckoutService) *Server {
	s := &Server{
		checkout: checkout,
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/lotteries", s.handleListLotteries)
		r.Get("/orders/{orderID}", s.handleGetOrder)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Put("/input", s.handleUpdateInput)
				r.Put("/digits", s.handleUpdateDigits)
				r.Put("/bet", s.handleUpdateBet)
				r.Put("/lotteries", s.handleUpdateLotteries)
				r.Delete("/numbers/{digit}/{index}", s.handleRemoveNumber)
				r.Post("/submit", s.handleSubmit)
				r.Post("/payment", s.handleBeginPayment)
				r.Post("/payment/result", s.handleResolvePayment)
				r.Post("/reset", s.handleReset)
				r.Post("/reuse", s.handleReuseOrder)
				r.Get("/whatsapp", s.handleWhatsAppLink)
			})
		})
	})

	s.httpServer = &http.Server{
		Addr:              listenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the root HTTP handler, used directly by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving HTTP requests and blocks until the listener stops
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request with its status and duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Debug("handled request")
	})
}
