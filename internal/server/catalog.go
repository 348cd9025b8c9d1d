package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/repositories"
	"github.com/desertthunder/chinook/internal/shared"
)

const maxBodyBytes = 1 << 20

// Connector hands out one store connection per request. [sql.DB] satisfies it.
type Connector interface {
	Conn(ctx context.Context) (*sql.Conn, error)
	PingContext(ctx context.Context) error
}

// resourceHandler serves every method and path shape of one resource.
type resourceHandler func(w http.ResponseWriter, r *request)

// request is an incoming request after routing: the path segments that follow the resource name
// and a catalog bound to the connection borrowed for this request.
type request struct {
	*http.Request
	segments []string
	catalog  *repositories.Catalog
}

// query returns the named query parameter and whether it was supplied at all.
func (r *request) query(name string) (string, bool) {
	values := r.URL.Query()
	if !values.Has(name) {
		return "", false
	}
	return values.Get(name), true
}

// decode reads the JSON body into v. A missing body leaves v untouched.
func (r *request) decode(v any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	return nil
}

// CatalogHandler routes /{resource}/... requests to the resource handlers.
type CatalogHandler struct {
	db        Connector
	prefix    string
	logger    *log.Logger
	resources map[string]resourceHandler
}

// NewCatalogHandler creates a [CatalogHandler]. prefix is stripped from every request path before routing.
func NewCatalogHandler(db Connector, prefix string, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{
		db:     db,
		prefix: strings.TrimRight(prefix, "/"),
		logger: logger,
		resources: map[string]resourceHandler{
			"albums":      albums,
			"artists":     artists,
			"tracks":      tracks,
			"genres":      genres,
			"media_types": mediaTypes,
			"playlists":   playlists,
		},
	}
}

// Routes returns the catch-all pattern. Routing below it is done by [CatalogHandler.ServeHTTP].
func (h *CatalogHandler) Routes() []string {
	return []string{"/"}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := h.split(r.URL.Path)
	if len(segments) == 0 {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	handle, ok := h.resources[segments[0]]
	if !ok {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	conn, err := h.db.Conn(r.Context())
	if err != nil {
		h.logger.Error("failed to connect to the database", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Failed to connect to the database.")
		return
	}
	defer conn.Close()

	handle(w, &request{
		Request:  r,
		segments: segments[1:],
		catalog:  repositories.NewCatalog(conn, h.logger),
	})
}

// split strips the prefix and returns the remaining /-delimited segments.
func (h *CatalogHandler) split(path string) []string {
	if h.prefix != "" && (path == h.prefix || strings.HasPrefix(path, h.prefix+"/")) {
		path = strings.TrimPrefix(path, h.prefix)
	}

	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Health answers 200 while the store responds to a ping and 503 otherwise.
func Health(db Connector, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Database unavailable.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Register installs the middleware stack, the health check and the catalog on router.
func Register(router Router, db Connector, cfg shared.ServerConfig, logger *log.Logger) {
	router.Use(RequestID, Logging(logger), Recover(logger), RateLimit(cfg.RateLimit, cfg.Burst))
	router.Handle(http.MethodGet, "/healthz", Health(db, logger))
	router.Handler(NewCatalogHandler(db, cfg.Prefix, logger))
}

// NewRouter is a [BasicRouter] set up by [Register].
func NewRouter(db Connector, cfg shared.ServerConfig, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	Register(router, db, cfg, logger)
	return router
}
