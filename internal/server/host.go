package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songbox/internal/shared"
)

//go:embed player.html
var playerPage string

// session is one registered player page. Lifecycle events posted by the page
// are forwarded to notify; transport commands queue up until the page polls.
type session struct {
	id       string
	videoID  string
	autoplay bool
	notify   func(event, message string)

	mu       sync.Mutex
	commands []string
	closed   bool
}

// EmbedHost serves hosted player pages and relays lifecycle events and
// transport commands for registered sessions.
//
// A single instance is shared process-wide. Nothing listens until the first
// [EmbedHost.Register] call; startup runs exactly once and concurrent
// registrations block on the same outcome.
type EmbedHost struct {
	host   string
	port   int
	logger *log.Logger

	startOnce sync.Once
	ready     chan struct{}
	startErr  error
	baseURL   string

	mu       sync.Mutex
	sessions map[string]*session
}

// NewEmbedHost creates an embed host bound to the configured address. Port 0
// selects an ephemeral port at startup.
func NewEmbedHost(cfg shared.ServerConfig, logger *log.Logger) *EmbedHost {
	return &EmbedHost{
		host:     cfg.Host,
		port:     cfg.Port,
		logger:   logger,
		ready:    make(chan struct{}),
		sessions: make(map[string]*session),
	}
}

// ensureStarted performs the lazy, once-only server startup. Every caller
// blocks until the single startup attempt finishes and shares its error.
func (h *EmbedHost) ensureStarted() error {
	h.startOnce.Do(func() {
		defer close(h.ready)

		addr := net.JoinHostPort(h.host, fmt.Sprintf("%d", h.port))
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			h.startErr = fmt.Errorf("failed to start embed host: %w", err)
			return
		}

		h.baseURL = "http://" + listener.Addr().String()

		router := NewBasicRouter()
		router.Use(LoopbackOnly(), RequestLogger(h.logger))
		router.Handler(&playerHandler{host: h})
		router.Handler(&sessionHandler{host: h})

		go func() {
			if err := http.Serve(listener, router); err != nil {
				h.logger.Error("embed host stopped", "err", err)
			}
		}()

		h.logger.Info("embed host started", "url", h.baseURL)
	})

	<-h.ready
	return h.startErr
}

// Start forces startup without registering a session. Used by the standalone
// serve command; adapters normally rely on the lazy path instead.
func (h *EmbedHost) Start() error {
	return h.ensureStarted()
}

// Register creates a session for a video and returns its id. Starts the
// server if it is not running yet.
func (h *EmbedHost) Register(videoID string, autoplay bool, notify func(event, message string)) (string, error) {
	if err := h.ensureStarted(); err != nil {
		return "", err
	}

	s := &session{
		id:       shared.GenerateID(),
		videoID:  videoID,
		autoplay: autoplay,
		notify:   notify,
	}

	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()

	return s.id, nil
}

// Deregister removes a session. Events and commands for a removed session are
// dropped; the page's next poll gets a 404 and stops.
func (h *EmbedHost) Deregister(sessionID string) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	if ok {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	}
}

// PushCommand queues a transport command for the session's page to pick up.
func (h *EmbedHost) PushCommand(sessionID, command string) error {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: session %s", shared.ErrAdapterUnmounted, sessionID)
	}

	s.mu.Lock()
	s.commands = append(s.commands, command)
	s.mu.Unlock()
	return nil
}

// PlayerURL returns the hosted page URL for a session. Only valid after the
// session was registered (the server is running by then).
func (h *EmbedHost) PlayerURL(sessionID string) string {
	return fmt.Sprintf("%s/player/%s", h.baseURL, sessionID)
}

// BaseURL returns the running server's base URL, empty before startup.
func (h *EmbedHost) BaseURL() string {
	select {
	case <-h.ready:
		return h.baseURL
	default:
		return ""
	}
}

func (h *EmbedHost) lookup(sessionID string) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[sessionID]
}

// playerHandler serves the hosted IFrame API page for a session.
type playerHandler struct {
	host *EmbedHost
}

func (p *playerHandler) Routes() []string {
	return []string{"/player/"}
}

func (p *playerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := strings.TrimPrefix(r.URL.Path, "/player/")
	s := p.host.lookup(sessionID)
	if s == nil {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}

	autoplay := "0"
	if s.autoplay {
		autoplay = "1"
	}

	page := strings.NewReplacer(
		"{{SESSION_ID}}", s.id,
		"{{VIDEO_ID}}", s.videoID,
		"{{AUTOPLAY}}", autoplay,
	).Replace(playerPage)

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, page)
}

// sessionEvent is the body the player page posts on lifecycle changes.
type sessionEvent struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// sessionHandler receives lifecycle events and serves command polls.
type sessionHandler struct {
	host *EmbedHost
}

func (sh *sessionHandler) Routes() []string {
	return []string{"/sessions/"}
}

func (sh *sessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
	sessionID, action, found := strings.Cut(rest, "/")
	if !found {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	s := sh.host.lookup(sessionID)
	if s == nil {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}

	switch {
	case action == "events" && r.Method == http.MethodPost:
		sh.handleEvent(w, r, s)
	case action == "commands" && r.Method == http.MethodGet:
		sh.handleCommands(w, s)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (sh *sessionHandler) handleEvent(w http.ResponseWriter, r *http.Request, s *session) {
	var ev sessionEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Invalid event body", http.StatusBadRequest)
		return
	}

	switch ev.Event {
	case "ready", "ended", "error":
	default:
		http.Error(w, "Unknown event", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.notify(ev.Event, ev.Message)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (sh *sessionHandler) handleCommands(w http.ResponseWriter, s *session) {
	s.mu.Lock()
	commands := s.commands
	s.commands = nil
	s.mu.Unlock()

	if commands == nil {
		commands = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(commands); err != nil {
		sh.host.logger.Warn("failed to write command poll response", "err", err)
	}
}
