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

// SpotifyEntityType is the kind of Spotify object a URL points at.
type SpotifyEntityType string

const (
	SpotifyTrack    SpotifyEntityType = "track"
	SpotifyAlbum    SpotifyEntityType = "album"
	SpotifyPlaylist SpotifyEntityType = "playlist"
	SpotifyEpisode  SpotifyEntityType = "episode"
	SpotifyShow     SpotifyEntityType = "show"
)

// SpotifyEntity is a parsed open.spotify.com URL.
type SpotifyEntity struct {
	Type SpotifyEntityType
	ID   string
}

// EmbedURL returns the embeddable player URL for the entity.
func (e SpotifyEntity) EmbedURL(autoplay bool) string {
	embed := fmt.Sprintf("https://open.spotify.com/embed/%s/%s", e.Type, e.ID)
	if autoplay {
		embed += "?autoplay=1"
	}
	return embed
}

// ParseSpotifyURL parses an open.spotify.com URL into its entity type and id.
// Locale path prefixes (intl-xx) are skipped.
func ParseSpotifyURL(rawURL string) (SpotifyEntity, error) {
	trimmed := strings.TrimSpace(rawURL)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("https://" + trimmed)
		if err != nil {
			return SpotifyEntity{}, fmt.Errorf("%w: %s", shared.ErrInvalidSpotifyURL, rawURL)
		}
	}

	if strings.ToLower(parsed.Hostname()) != "open.spotify.com" {
		return SpotifyEntity{}, fmt.Errorf("%w: %s", shared.ErrInvalidSpotifyURL, rawURL)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
		segments = segments[1:]
	}
	if len(segments) < 2 || segments[1] == "" {
		return SpotifyEntity{}, fmt.Errorf("%w: %s", shared.ErrInvalidSpotifyURL, rawURL)
	}

	switch SpotifyEntityType(segments[0]) {
	case SpotifyTrack, SpotifyAlbum, SpotifyPlaylist, SpotifyEpisode, SpotifyShow:
		return SpotifyEntity{Type: SpotifyEntityType(segments[0]), ID: segments[1]}, nil
	default:
		return SpotifyEntity{}, fmt.Errorf("%w: unsupported entity %s", shared.ErrInvalidSpotifyURL, segments[0])
	}
}

// Spotify plays entities through the opaque Spotify embed. There is no
// programmatic completion signal, so ended never fires and no transport
// exists; the adapter only reports mount failures.
type Spotify struct {
	open     func(url string) error
	autoplay bool
	logger   *log.Logger

	mu       sync.Mutex
	handlers map[Event][]func(Payload)
	mounted  bool
}

// NewSpotify creates a Spotify adapter. openBrowser may be nil, in which case
// the system browser opener is used.
func NewSpotify(autoplay bool, openBrowser func(string) error, logger *log.Logger) *Spotify {
	if openBrowser == nil {
		openBrowser = shared.OpenBrowser
	}
	return &Spotify{
		open:     openBrowser,
		autoplay: autoplay,
		logger:   logger,
		handlers: make(map[Event][]func(Payload)),
	}
}

// On registers a lifecycle event handler. Handlers for [EventEnded] are
// accepted but never invoked.
func (s *Spotify) On(event Event, fn func(Payload)) {
	s.mu.Lock()
	s.handlers[event] = append(s.handlers[event], fn)
	s.mu.Unlock()
}

// Mount opens the entity's embed URL. A parse failure is terminal; an open
// failure fires the error event.
func (s *Spotify) Mount(ctx context.Context, rawURL string) error {
	entity, err := ParseSpotifyURL(rawURL)
	if err != nil {
		s.dispatch(EventError, Payload{Message: err.Error()})
		return err
	}

	if err := s.open(entity.EmbedURL(s.autoplay)); err != nil {
		s.logger.Error("failed to open spotify embed", "id", entity.ID, "err", err)
		s.dispatch(EventError, Payload{Message: err.Error()})
		return nil
	}

	s.mu.Lock()
	s.mounted = true
	s.mu.Unlock()

	s.dispatch(EventReady, Payload{})
	return nil
}

// Unmount clears the mounted flag. The embed lives in the user's browser tab;
// there is nothing to tear down.
func (s *Spotify) Unmount() {
	s.mu.Lock()
	s.mounted = false
	s.mu.Unlock()
}

func (s *Spotify) dispatch(event Event, payload Payload) {
	s.mu.Lock()
	fns := make([]func(Payload), len(s.handlers[event]))
	copy(fns, s.handlers[event])
	s.mu.Unlock()

	for _, fn := range fns {
		fn(payload)
	}
}
