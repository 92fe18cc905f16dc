// Package resolve fetches display metadata for pasted links through the
// public oEmbed endpoints of each platform. No credentials are involved;
// requests are rate limited so bulk enrichment stays polite.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
	"golang.org/x/time/rate"
)

const (
	youtubeOEmbedURL = "https://www.youtube.com/oembed"
	spotifyOEmbedURL = "https://open.spotify.com/oembed"

	requestTimeout = 10 * time.Second
)

// Metadata is the display information an oEmbed endpoint returns for a link.
type Metadata struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Client resolves link metadata, one oEmbed request per call.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// New creates a resolver client. httpClient may be nil, in which case a
// default client with a request timeout is used.
func New(cfg shared.ResolverConfig, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Resolve fetches metadata for a URL. The platform decides which oEmbed
// endpoint serves it; unknown platforms fail without a request.
func (c *Client) Resolve(ctx context.Context, rawURL string) (*Metadata, error) {
	var endpoint string
	switch models.ClassifyURL(rawURL) {
	case models.PlatformYouTube:
		endpoint = youtubeOEmbedURL
	case models.PlatformSpotify:
		endpoint = spotifyOEmbedURL
	default:
		return nil, fmt.Errorf("%w: no oembed endpoint for %s", shared.ErrResolveFailed, rawURL)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrResolveFailed, err)
	}

	query := url.Values{}
	query.Set("url", rawURL)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrResolveFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrResolveFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: oembed returned status %d", shared.ErrResolveFailed, resp.StatusCode)
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrResolveFailed, err)
	}

	c.logger.Debug("resolved link metadata", "url", rawURL, "title", meta.Title)
	return &meta, nil
}
