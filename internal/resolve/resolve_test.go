package resolve

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/desertthunder/songbox/internal/shared"
	helpers "github.com/desertthunder/songbox/internal/testing"
)

func oembedResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newTestClient(rt http.RoundTripper) *Client {
	cfg := shared.ResolverConfig{RequestsPerSecond: 1000, Burst: 10}
	return New(cfg, &http.Client{Transport: rt}, shared.NewLogger(nil))
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("YouTubeLinkUsesYouTubeEndpoint", func(t *testing.T) {
		rt := helpers.NewMockRoundTripper(oembedResponse(
			`{"title":"Never Gonna Give You Up","author_name":"Rick Astley","provider_name":"YouTube"}`,
		), nil)
		c := newTestClient(rt)

		meta, err := c.Resolve(ctx, "https://youtu.be/dQw4w9WgXcQ")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if meta.Title != "Never Gonna Give You Up" || meta.AuthorName != "Rick Astley" {
			t.Errorf("unexpected metadata: %+v", meta)
		}

		if len(rt.Requests) != 1 {
			t.Fatalf("expected one request, got %d", len(rt.Requests))
		}
		req := rt.Requests[0]
		if req.URL.Host != "www.youtube.com" || req.URL.Path != "/oembed" {
			t.Errorf("expected youtube oembed endpoint, got %s", req.URL)
		}
		if got := req.URL.Query().Get("url"); got != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("expected source url in query, got %s", got)
		}
	})

	t.Run("SpotifyLinkUsesSpotifyEndpoint", func(t *testing.T) {
		rt := helpers.NewMockRoundTripper(oembedResponse(
			`{"title":"Song","provider_name":"Spotify"}`,
		), nil)
		c := newTestClient(rt)

		if _, err := c.Resolve(ctx, "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"); err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if rt.Requests[0].URL.Host != "open.spotify.com" {
			t.Errorf("expected spotify oembed endpoint, got %s", rt.Requests[0].URL)
		}
	})

	t.Run("UnknownPlatformFailsWithoutRequest", func(t *testing.T) {
		rt := helpers.NewMockRoundTripper(nil, nil)
		c := newTestClient(rt)

		_, err := c.Resolve(ctx, "https://example.com/song")
		if !errors.Is(err, shared.ErrResolveFailed) {
			t.Fatalf("expected ErrResolveFailed, got %v", err)
		}
		if len(rt.Requests) != 0 {
			t.Error("unknown platform must not hit the network")
		}
	})

	t.Run("NonOKStatusFails", func(t *testing.T) {
		rt := helpers.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBufferString("Not Found")),
		}, nil)
		c := newTestClient(rt)

		if _, err := c.Resolve(ctx, "https://youtu.be/dQw4w9WgXcQ"); !errors.Is(err, shared.ErrResolveFailed) {
			t.Errorf("expected ErrResolveFailed, got %v", err)
		}
	})

	t.Run("TransportErrorWrapped", func(t *testing.T) {
		rt := helpers.NewMockRoundTripper(nil, errors.New("connection refused"))
		c := newTestClient(rt)

		if _, err := c.Resolve(ctx, "https://youtu.be/dQw4w9WgXcQ"); !errors.Is(err, shared.ErrResolveFailed) {
			t.Errorf("expected ErrResolveFailed, got %v", err)
		}
	})

	t.Run("MalformedBodyFails", func(t *testing.T) {
		rt := helpers.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       &helpers.FCloser{},
		}, nil)
		c := newTestClient(rt)

		if _, err := c.Resolve(ctx, "https://youtu.be/dQw4w9WgXcQ"); !errors.Is(err, shared.ErrResolveFailed) {
			t.Errorf("expected ErrResolveFailed, got %v", err)
		}
	})
}
