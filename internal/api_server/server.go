package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/authz"
	"github.com/testlane/testlane/internal/config"
	handlers "github.com/testlane/testlane/internal/handlers/v1alpha1"
	"github.com/testlane/testlane/internal/service"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/pkg/metrics"
	"github.com/testlane/testlane/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

// New returns a new instance of the testlane api server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	tokenIssuer, err := auth.NewTokenIssuer(s.cfg.Service.Auth)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	hasher := auth.NewArgon2Hasher(
		s.cfg.Service.Auth.HashMemory,
		s.cfg.Service.Auth.HashIterations,
		s.cfg.Service.Auth.HashParallelism,
	)

	credentials, err := auth.NewCredentials(s.store, hasher, tokenIssuer)
	if err != nil {
		return fmt.Errorf("failed to create credentials service: %w", err)
	}

	authenticator := auth.NewAuthenticator(auth.NewResolver(s.store, credentials))

	engine := authz.NewEngine(s.store)

	h := handlers.NewServiceHandler(
		service.NewUserService(s.store, credentials),
		service.NewCompanyService(s.store, engine),
		service.NewMembershipService(s.store, engine),
		service.NewProjectService(s.store, engine),
		service.NewTestCaseService(s.store, engine),
	)

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{s.cfg.Service.BaseUrl},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Authenticator)

			r.Route("/company", func(r chi.Router) {
				r.Get("/", h.GetCompany)
				r.Put("/", h.UpdateCompany)
				r.Delete("/", h.DeleteCompany)

				r.Route("/members", func(r chi.Router) {
					r.Get("/", h.ListMembers)
					r.Post("/", h.AddMember)
					r.Put("/{userId}", h.UpdateMember)
					r.Delete("/{userId}", h.RemoveMember)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.ListProjects)
				r.Post("/", h.CreateProject)
				r.Get("/{id}", h.GetProject)
				r.Put("/{id}", h.UpdateProject)
				r.Delete("/{id}", h.DeleteProject)
				r.Get("/{id}/testcases", h.ListTestCases)
				r.Post("/{id}/testcases", h.CreateTestCase)
			})

			r.Route("/testcases", func(r chi.Router) {
				r.Get("/{id}", h.GetTestCase)
				r.Put("/{id}", h.UpdateTestCase)
				r.Delete("/{id}", h.DeleteTestCase)
			})
		})
	})

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
