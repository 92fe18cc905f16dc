package player

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songbox/internal/shared"
)

// videoIDLength is the fixed length of a YouTube video id.
const videoIDLength = 11

// Host is the slice of the embed host the YouTube adapter consumes.
type Host interface {
	Register(videoID string, autoplay bool, notify func(event, message string)) (string, error)
	Deregister(sessionID string)
	PushCommand(sessionID, command string) error
	PlayerURL(sessionID string) string
}

// YouTube plays videos through a hosted IFrame API page opened in the
// browser. Lifecycle events flow back over the embed host; transport commands
// flow forward through it.
type YouTube struct {
	host     Host
	open     func(url string) error
	autoplay bool
	logger   *log.Logger

	mu        sync.Mutex
	handlers  map[Event][]func(Payload)
	sessionID string
	cancelled bool
}

// NewYouTube creates a YouTube adapter. openBrowser may be nil, in which case
// the system browser opener is used.
func NewYouTube(host Host, autoplay bool, openBrowser func(string) error, logger *log.Logger) *YouTube {
	if openBrowser == nil {
		openBrowser = shared.OpenBrowser
	}
	return &YouTube{
		host:     host,
		open:     openBrowser,
		autoplay: autoplay,
		logger:   logger,
		handlers: make(map[Event][]func(Payload)),
	}
}

// On registers a lifecycle event handler.
func (y *YouTube) On(event Event, fn func(Payload)) {
	y.mu.Lock()
	y.handlers[event] = append(y.handlers[event], fn)
	y.mu.Unlock()
}

// Mount validates the URL and begins playback asynchronously. An
// unrecognizable URL is terminal: the error event fires and no session is
// created. Runtime failures after validation also surface as error events.
func (y *YouTube) Mount(ctx context.Context, rawURL string) error {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		y.dispatch(EventError, Payload{Message: err.Error()})
		return err
	}

	y.mu.Lock()
	y.cancelled = false
	y.mu.Unlock()

	go y.mount(ctx, videoID)
	return nil
}

// mount registers the session and opens the hosted page. The cancelled flag
// is consulted after the registration completes so that an unmount racing the
// async mount never leaves a live session behind.
func (y *YouTube) mount(ctx context.Context, videoID string) {
	sessionID, err := y.host.Register(videoID, y.autoplay, y.forward)
	if err != nil {
		y.logger.Error("failed to register player session", "video", videoID, "err", err)
		y.dispatch(EventError, Payload{Message: err.Error()})
		return
	}

	y.mu.Lock()
	if y.cancelled || ctx.Err() != nil {
		y.mu.Unlock()
		y.host.Deregister(sessionID)
		return
	}
	y.sessionID = sessionID
	y.mu.Unlock()

	if err := y.open(y.host.PlayerURL(sessionID)); err != nil {
		y.logger.Error("failed to open player page", "video", videoID, "err", err)
		y.dispatch(EventError, Payload{Message: err.Error()})
	}
}

// Unmount tears the session down. Teardown problems are swallowed; the flag
// also cancels an async mount still in flight.
func (y *YouTube) Unmount() {
	y.mu.Lock()
	y.cancelled = true
	sessionID := y.sessionID
	y.sessionID = ""
	y.mu.Unlock()

	if sessionID != "" {
		y.host.Deregister(sessionID)
	}
}

// Transport returns the play/pause command handle for the mounted session.
func (y *YouTube) Transport() Transport {
	return &youtubeTransport{adapter: y}
}

// forward adapts embed-host callbacks into adapter events.
func (y *YouTube) forward(event, message string) {
	switch Event(event) {
	case EventReady, EventEnded, EventError:
		y.dispatch(Event(event), Payload{Message: message})
	default:
		y.logger.Warn("ignoring unknown player event", "event", event)
	}
}

func (y *YouTube) dispatch(event Event, payload Payload) {
	y.mu.Lock()
	fns := make([]func(Payload), len(y.handlers[event]))
	copy(fns, y.handlers[event])
	y.mu.Unlock()

	for _, fn := range fns {
		fn(payload)
	}
}

type youtubeTransport struct {
	adapter *YouTube
}

func (t *youtubeTransport) Play() error  { return t.send("play") }
func (t *youtubeTransport) Pause() error { return t.send("pause") }

func (t *youtubeTransport) send(command string) error {
	t.adapter.mu.Lock()
	sessionID := t.adapter.sessionID
	t.adapter.mu.Unlock()

	if sessionID == "" {
		return shared.ErrAdapterUnmounted
	}
	return t.adapter.host.PushCommand(sessionID, command)
}

// ExtractVideoID pulls the 11-character video id out of any of YouTube's URL
// shapes: watch?v=, youtu.be/, embed/, shorts/, v/, and the legacy
// u/<user>/<id> form.
func ExtractVideoID(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("https://" + trimmed)
		if err != nil {
			return "", fmt.Errorf("%w: %s", shared.ErrInvalidVideoURL, rawURL)
		}
	}

	host := strings.ToLower(parsed.Hostname())
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")

	var candidate string
	switch {
	case host == "youtu.be":
		candidate = segments[0]
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		switch {
		case parsed.Path == "/watch":
			candidate = parsed.Query().Get("v")
		case len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "v"):
			candidate = segments[1]
		case len(segments) >= 2 && segments[0] == "u":
			candidate = segments[len(segments)-1]
		}
	}

	if !validVideoID(candidate) {
		return "", fmt.Errorf("%w: %s", shared.ErrInvalidVideoURL, rawURL)
	}
	return candidate, nil
}

func validVideoID(id string) bool {
	if len(id) != videoIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
