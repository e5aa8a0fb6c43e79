package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karouieya6/enrollmentservice/internal/config"
	"github.com/karouieya6/enrollmentservice/internal/http/auth"
	"github.com/karouieya6/enrollmentservice/internal/http/common"
	enrollhttp "github.com/karouieya6/enrollmentservice/internal/http/enrollments"
	"github.com/karouieya6/enrollmentservice/internal/infra/identity"
	"github.com/karouieya6/enrollmentservice/internal/infra/revocation"
	"github.com/karouieya6/enrollmentservice/internal/infra/token"
	"github.com/karouieya6/enrollmentservice/internal/repo/postgres"
	"github.com/karouieya6/enrollmentservice/internal/usecase"
)

type Server struct {
	cfg           config.Config
	r             *gin.Engine
	service       *usecase.EnrollmentService
	authenticator *auth.BearerAuthenticator
	policy        *auth.Policy
	registry      revocation.Registry
	log           *logrus.Logger
}

type ServerDeps struct {
	Service       *usecase.EnrollmentService
	Authenticator *auth.BearerAuthenticator
	Policy        *auth.Policy
	Registry      revocation.Registry
	Log           *logrus.Logger
}

// NewServer wires the production dependency graph: gorm store, token manager,
// revocation registry (Redis when configured, otherwise process-local), and
// the identity client.
func NewServer(cfg config.Config, store *postgres.Store) (*Server, error) {
	log := newLogger(cfg.LogLevel)

	validator, err := token.NewManager(token.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		Leeway: cfg.JWTLeeway(),
	})
	if err != nil {
		return nil, err
	}

	var registry revocation.Registry
	if cfg.RedisAddr != "" {
		registry, err = revocation.NewRedisRegistry(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RevocationTTL())
		if err != nil {
			return nil, err
		}
	} else {
		registry = revocation.NewMemoryRegistry()
	}

	if cfg.IdentityURL == "" {
		return nil, errors.New("IDENTITY_URL is required")
	}
	resolver := identity.NewClient(cfg.IdentityURL, cfg.IdentityTimeout())

	service := usecase.NewEnrollmentService(postgres.NewEnrollmentRepo(store.DB), resolver, log)
	return NewServerWithDeps(cfg, ServerDeps{
		Service:       service,
		Authenticator: auth.NewBearerAuthenticator(validator, registry, log),
		Policy:        auth.DefaultPolicy(),
		Registry:      registry,
		Log:           log,
	}), nil
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:           cfg,
		r:             r,
		service:       deps.Service,
		authenticator: deps.Authenticator,
		policy:        deps.Policy,
		registry:      deps.Registry,
		log:           deps.Log,
	}
	if s.policy == nil {
		s.policy = auth.DefaultPolicy()
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	s.routes()
	return s
}

func (s *Server) Run() error {
	addr := s.cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	s.log.Infof("enrollment service listening on %s", addr)
	return s.r.Run(addr)
}

// Handler exposes the configured engine for tests.
func (s *Server) Handler() http.Handler {
	return s.r
}

func (s *Server) routes() {
	s.r.Use(common.RequestID())
	s.r.Use(s.authenticator.Middleware())
	s.r.Use(s.policy.Middleware())

	s.r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.r.POST("/auth/logout", s.handleLogout)

	handler := enrollhttp.NewHandler(s.service)
	s.r.POST("/enrollments", handler.HandleEnroll)
	s.r.DELETE("/enrollments", handler.HandleUnenroll)
	s.r.GET("/enrollments", handler.HandleListAll)
	s.r.GET("/enrollments/user/:userId", handler.HandleListByUser)
	s.r.GET("/enrollments/user/:userId/count", handler.HandleCountByUser)
	s.r.GET("/enrollments/check", handler.HandleCheck)
	s.r.GET("/enrollments/:id", handler.HandleGetByID)
}

// handleLogout revokes the presented credential. The route sits behind the
// default policy rule, so only an authenticated request reaches it.
func (s *Server) handleLogout(c *gin.Context) {
	credential := auth.CredentialFromContext(c)
	if credential == "" {
		common.WriteErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	if err := s.registry.Revoke(c.Request.Context(), credential); err != nil {
		s.log.WithError(err).Error("token revocation failed")
		common.WriteErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
