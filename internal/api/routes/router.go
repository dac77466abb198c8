package routes

import (
	"net/http"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wardwatch/statuspanel/internal/api/handlers"
	"github.com/wardwatch/statuspanel/internal/api/middleware"
	"github.com/wardwatch/statuspanel/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler      *handlers.AuthHandler
	sectorHandler    *handlers.SectorHandler
	physicianHandler *handlers.PhysicianHandler
	patientHandler   *handlers.PatientHandler
	videoHandler     *handlers.VideoHandler
	sseHandler       *handlers.SSEHandler

	authMiddleware *middleware.AuthMiddleware
	metrics        *observability.Metrics
	staticDir      string
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	sectorHandler *handlers.SectorHandler,
	physicianHandler *handlers.PhysicianHandler,
	patientHandler *handlers.PatientHandler,
	videoHandler *handlers.VideoHandler,
	sseHandler *handlers.SSEHandler,
	authMiddleware *middleware.AuthMiddleware,
	metrics *observability.Metrics,
	staticDir string,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		authHandler:      authHandler,
		sectorHandler:    sectorHandler,
		physicianHandler: physicianHandler,
		patientHandler:   patientHandler,
		videoHandler:     videoHandler,
		sseHandler:       sseHandler,
		authMiddleware:   authMiddleware,
		metrics:          metrics,
		staticDir:        staticDir,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.Handle("GET /metrics", promhttp.Handler())

	// Auth endpoints
	r.mux.HandleFunc("POST /login", r.authHandler.Login)
	r.mux.HandleFunc("GET /session-check", r.authHandler.SessionCheck)
	r.mux.HandleFunc("POST /logout", r.authHandler.Logout)

	// Live-update stream; public so unattended TVs need no credentials
	r.mux.HandleFunc("GET /events", r.sseHandler.Stream)

	// Entity endpoints, all behind the session gate
	protect := r.authMiddleware.RequireAuth

	r.mux.Handle("GET /sectors", protect(http.HandlerFunc(r.sectorHandler.ListSectors)))
	r.mux.Handle("POST /sectors/{id}", protect(http.HandlerFunc(r.sectorHandler.UpdateSector)))

	r.mux.Handle("GET /physicians", protect(http.HandlerFunc(r.physicianHandler.ListPhysicians)))
	r.mux.Handle("POST /physicians", protect(http.HandlerFunc(r.physicianHandler.AddPhysician)))
	r.mux.Handle("POST /physicians/{id}/status", protect(http.HandlerFunc(r.physicianHandler.SetStatus)))
	r.mux.Handle("DELETE /physicians/{id}", protect(http.HandlerFunc(r.physicianHandler.RemovePhysician)))

	r.mux.Handle("GET /patients", protect(http.HandlerFunc(r.patientHandler.ListPatients)))
	r.mux.Handle("POST /patients", protect(http.HandlerFunc(r.patientHandler.AddPatient)))
	r.mux.Handle("POST /patients/{id}/route", protect(http.HandlerFunc(r.patientHandler.Route)))
	r.mux.Handle("DELETE /patients/{id}", protect(http.HandlerFunc(r.patientHandler.RemovePatient)))

	// Video control for the TVs
	r.mux.Handle("POST /play-video", protect(http.HandlerFunc(r.videoHandler.PlayVideo)))
	r.mux.Handle("POST /stop-video", protect(http.HandlerFunc(r.videoHandler.StopVideo)))

	r.setupPages()

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}

// setupPages serves the admin panel, TV and login pages when a static
// directory is configured. The TV page stays public; the panel itself
// is gated like the API.
func (r *Router) setupPages() {
	if r.staticDir == "" {
		return
	}

	servePage := func(name string) http.HandlerFunc {
		page := filepath.Join(r.staticDir, name)
		return func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, page)
		}
	}

	r.mux.HandleFunc("GET /login", servePage("login.html"))
	r.mux.HandleFunc("GET /tv", servePage("tv.html"))

	panel := servePage("index.html")
	r.mux.Handle("GET /index.html", r.authMiddleware.RequireAuth(panel))
	r.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		if r.authMiddleware.Authenticated(req) {
			panel(w, req)
			return
		}
		http.Redirect(w, req, "/login", http.StatusFound)
	})

	assets := http.FileServer(http.Dir(r.staticDir))
	r.mux.Handle("GET /assets/", http.StripPrefix("/assets/", assets))
}
