package webapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gallery-server/internal/domain/auth"
	"gallery-server/internal/domain/client"
	"gallery-server/internal/domain/contact"
	"gallery-server/internal/domain/photo"
	"gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/logging"
	"gallery-server/internal/platform/mail"
	"gallery-server/internal/platform/uploads"
	httptransport "gallery-server/internal/transport/http"
)

// Service is the HTTP transport for the gallery API.
type Service struct {
	config   *config.Config
	logger   *logging.Logger
	tokens   *auth.TokenService
	clients  *client.Service
	photos   *photo.Service
	contact  *contact.Service
	uploads  uploads.Provider
	notifier mail.Notifier
}

// Options carries the collaborators the API needs.
type Options struct {
	Config   *config.Config
	Logger   *logging.Logger
	Tokens   *auth.TokenService
	Clients  *client.Service
	Photos   *photo.Service
	Contact  *contact.Service
	Uploads  uploads.Provider
	Notifier mail.Notifier
}

// NewService creates the API service.
func NewService(opts Options) (*Service, error) {
	if opts.Config == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "webapi.new", "config is required")
	}
	if opts.Logger == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "webapi.new", "logger is required")
	}
	if opts.Tokens == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "webapi.new", "token service is required")
	}
	if opts.Clients == nil || opts.Photos == nil || opts.Contact == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "webapi.new", "domain services are required")
	}
	if opts.Uploads == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "webapi.new", "storage provider is required")
	}
	if opts.Notifier == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "webapi.new", "notifier is required")
	}

	return &Service{
		config:   opts.Config,
		logger:   opts.Logger,
		tokens:   opts.Tokens,
		clients:  opts.Clients,
		photos:   opts.Photos,
		contact:  opts.Contact,
		uploads:  opts.Uploads,
		notifier: opts.Notifier,
	}, nil
}

// Register wires all API routes onto the /api group.
func (s *Service) Register(ctx context.Context, api *gin.RouterGroup) error {
	api.GET("/health", s.handleHealth)
	api.POST("/contact", s.handleContact)

	api.POST("/admin/login", s.handleAdminLogin)
	admin := api.Group("/admin")
	admin.Use(httptransport.RequireRole(s.tokens, auth.RoleAdmin))
	{
		admin.GET("/clients", s.handleListClients)
		admin.POST("/clients", s.handleCreateClient)
		admin.DELETE("/clients/:id", s.handleDeleteClient)
		admin.GET("/clients/:id/photos", s.handleAdminClientPhotos)
		admin.POST("/photos", s.handleCreatePhoto)
		admin.DELETE("/photos/:id", s.handleDeletePhoto)
	}

	api.POST("/client/login", s.handleClientLogin)
	clientGroup := api.Group("/client")
	clientGroup.Use(httptransport.RequireRole(s.tokens, auth.RoleClient))
	{
		clientGroup.GET("/photos", s.handleClientPhotos)
	}

	s.logger.InfoTag("HTTP", "gallery API routes registered (storage=%s, email=%s)",
		s.uploads.Name(), s.notifier.Name())
	return nil
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
