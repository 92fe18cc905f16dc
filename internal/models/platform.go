package models

import (
	"net/url"
	"strings"
)

// Platform identifies which embedded player can handle a URL.
//
// Classification happens once at ingestion via [ClassifyURL]; downstream code
// switches exhaustively on the variant instead of re-inspecting URL strings.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformSpotify Platform = "spotify"
	PlatformUnknown Platform = "unknown"
)

// ClassifyURL maps a URL to its Platform variant.
//
// Unparseable input and unrecognized hosts both classify as
// [PlatformUnknown]; callers treat that as a handled variant, not an error.
func ClassifyURL(raw string) Platform {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		// Bare strings like "youtu.be/x" parse with an empty host
		parsed, err = url.Parse("https://" + strings.TrimSpace(raw))
		if err != nil {
			return PlatformUnknown
		}
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "youtu.be" || host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		return PlatformYouTube
	case host == "open.spotify.com":
		return PlatformSpotify
	default:
		return PlatformUnknown
	}
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}
