// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	svix "github.com/svix/svix-webhooks/go"

	"habitboard/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	habits   *app.HabitService
	progress *app.ProgressService
	stats    *app.StatsService
	identity *app.IdentityService

	verifier *oidc.IDTokenVerifier
	webhook  *svix.Webhook
	webDir   string

	disableAuth bool
}

// New creates a Server wired to the given application services. verifier
// authenticates API bearer tokens; webhook verifies inbound identity
// events. Either may be nil, which rejects the corresponding path.
func New(hs *app.HabitService, ps *app.ProgressService, ss *app.StatsService, is *app.IdentityService,
	verifier *oidc.IDTokenVerifier, webhook *svix.Webhook, webDir string) *Server {
	return &Server{
		habits:   hs,
		progress: ps,
		stats:    ss,
		identity: is,
		verifier: verifier,
		webhook:  webhook,
		webDir:   webDir,
	}
}

// WithoutAuth disables bearer-token verification; the user id is then read
// from the X-User-ID header. For tests and local development only.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/habits", s.handleHabits)
	api.HandleFunc("/habits/delete", s.handleHabitDelete)
	api.HandleFunc("/habits/presets", s.handlePresets)
	api.HandleFunc("/progress", s.handleProgress)
	api.HandleFunc("/stats/monthly", s.handleStatsMonthly)

	root := http.NewServeMux()
	root.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	root.HandleFunc("/api/webhooks/identity", s.handleIdentityWebhook)
	root.Handle("/api/", http.StripPrefix("/api", s.authMiddleware(api)))
	root.Handle("/", spaFromDisk(s.webDir))

	return withNoCache(root)
}
