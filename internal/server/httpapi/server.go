// Package httpapi exposes the server's HTTP surface: the public profile
// endpoint, the object storage gateway routes, and the owner-facing API.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/linkhub/internal/logging"
	"github.com/dmitrijs2005/linkhub/internal/server/models"
	"github.com/dmitrijs2005/linkhub/internal/server/objectstore"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/links"
	"github.com/dmitrijs2005/linkhub/internal/server/services"
)

// ProfileResolver resolves usernames into composed pages and handles
// owner-facing profile reads/updates.
type ProfileResolver interface {
	Resolve(ctx context.Context, username string) (*services.ResolvedProfile, error)
	ResolveOwner(ctx context.Context, userID int64) (*services.ResolvedProfile, error)
	UpdateProfile(ctx context.Context, userID int64, patch *services.ProfilePatch) (*models.Profile, error)
}

// ViewRecorder is the view attribution ledger.
type ViewRecorder interface {
	RecordView(ctx context.Context, subjectID int64, visitor string) (bool, error)
}

// ObjectGateway issues upload grants and serves object reads.
type ObjectGateway interface {
	IssueUploadGrant(ctx context.Context, name string, size int64, contentType string) (*services.UploadGrant, error)
	ReadObject(ctx context.Context, externalPath string) (*objectstore.Object, error)
}

// LinkManager is the owner-facing link surface.
type LinkManager interface {
	List(ctx context.Context, userID int64) ([]*models.Link, error)
	Create(ctx context.Context, userID int64, title, url string, position int) (*models.Link, error)
	Delete(ctx context.Context, userID, id int64) error
	Reorder(ctx context.Context, userID int64, positions []links.Position) error
}

// UserManager is the identity collaborator. ListAll and UpdateAccess back
// the admin surface.
type UserManager interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	UpdateAccess(ctx context.Context, id int64, patch *services.AccessPatch) (*models.User, error)
}

// BadgeLister reads the badge catalogue.
type BadgeLister interface {
	List(ctx context.Context) ([]*models.Badge, error)
}

// Services bundles the dependencies the HTTP layer composes.
type Services struct {
	Profiles ProfileResolver
	Views    ViewRecorder
	Objects  ObjectGateway
	Links    LinkManager
	Users    UserManager
	Badges   BadgeLister
}

type Server struct {
	address     string
	logger      logging.Logger
	jwtSecret   []byte
	corsOrigins []string
	svc         Services
}

func NewServer(address string, l logging.Logger, svc Services, secretKey, corsOrigins string) *Server {
	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimRight(o, "/"))
		}
	}

	return &Server{
		address:     address,
		logger:      l.With("module", "http_server"),
		jwtSecret:   []byte(secretKey),
		corsOrigins: origins,
		svc:         svc,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(s.withIdentity)

	r.Get("/healthz", s.handleHealth)

	r.Get("/public-profile/{username}", s.handlePublicProfile)
	r.Post("/uploads/request-url", s.handleRequestUploadURL)
	r.Get("/objects/*", s.handleServeObject)

	r.Post("/api/register", s.handleRegister)
	r.Post("/api/login", s.handleLogin)
	r.Get("/api/badges", s.handleListBadges)

	r.Group(func(r chi.Router) {
		r.Use(s.requireIdentity)
		r.Get("/api/user", s.handleCurrentUser)
		r.Get("/api/profile", s.handleGetProfile)
		r.Patch("/api/profile", s.handlePatchProfile)
		r.Get("/api/links", s.handleListLinks)
		r.Post("/api/links", s.handleCreateLink)
		r.Delete("/api/links/{id}", s.handleDeleteLink)
		r.Post("/api/links/reorder", s.handleReorderLinks)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/api/admin/users", s.handleListUsers)
			r.Patch("/api/admin/users/{id}", s.handlePatchUserAccess)
		})
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
