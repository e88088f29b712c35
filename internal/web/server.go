// Package web serves the adventure to a browser. Each browser session owns
// its own transcript controller; the page appends entries as text nodes.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"adventure/internal/logger"
	"adventure/internal/transcript"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// SessionCookie carries the session id.
	SessionCookie = "adventure_session"

	shutdownTimeout = 5 * time.Second
	maxKeyBody      = 64 << 10
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type Options struct {
	Addr    string
	Logger  *logger.LogEntry
	Metrics *Metrics
	// SessionTTL and MaxSessions bound memory held for browser sessions;
	// zero values select DefaultSessionTTL and DefaultMaxSessions.
	SessionTTL  time.Duration
	MaxSessions int
}

type Server struct {
	addr     string
	log      *logger.LogEntry
	metrics  *Metrics
	sessions *Sessions
	handler  http.Handler
}

func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.Named("web")
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	s := &Server{
		addr:     opts.Addr,
		log:      log,
		metrics:  metrics,
		sessions: NewSessions(SessionsOptions{
			TTL:     opts.SessionTTL,
			Max:     opts.MaxSessions,
			Metrics: metrics,
			Logger:  log,
		}),
	}
	s.handler = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) Sessions() *Sessions { return s.sessions }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/transcript", s.handleTranscript)
		r.Post("/keys", s.handleKey)
	})
	return r
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts down gracefully once ctx is
// done, giving in-flight requests a bounded deadline.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.sweepEvery(sweepCtx, sweepInterval(s.sessions.ttl))

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", ln.Addr())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("graceful shutdown did not complete")
			_ = srv.Close()
			return err
		}
		return nil
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Second)
}

type pageEntry struct {
	Class  string
	Prefix string
	Text   string
}

type pageData struct {
	Entries []pageEntry
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(w, r)
	data := pageData{}
	for _, entry := range sess.Entries() {
		pe := pageEntry{Class: entry.Kind.String(), Text: entry.Text}
		if entry.Kind == transcript.UserCommand {
			pe.Prefix = "> "
		}
		data.Entries = append(data.Entries, pe)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.WithError(err).Error("render page")
	}
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(w, r)
	writeJSON(w, http.StatusOK, map[string]any{"entries": sess.Entries()})
}

type keyRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxKeyBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid key event: " + err.Error()})
		return
	}
	sess, created := s.session(w, r)
	res := sess.Key(req.Key, req.Value)
	if created {
		// The page shows a transcript this process no longer has; hand the
		// browser the whole new one, welcome included.
		res.Entries = sess.Entries()
		res.Reset = true
	}
	writeJSON(w, http.StatusOK, res)
}

// session returns the caller's session, starting a new one when the cookie
// is missing or refers to a session this process does not know (or has
// expired). created reports the latter.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (sess *Session, created bool) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			return sess, false
		}
	}
	sess = s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, true
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logger.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"request_id": middleware.GetReqID(r.Context()),
			"duration":   time.Since(start).String(),
		}).Debug("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
