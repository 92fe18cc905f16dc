package models

import (
	"fmt"
	"strings"
	"time"
)

// Song represents a catalog entry with its related artists, tags, and links.
type Song struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Artists     []Artist  `json:"artists"`
	Tags        []Tag     `json:"tags"`
	Links       []Link    `json:"links"`
}

// Artist represents a named artist row.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tag represents a named tag row.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Link represents a playable URL attached to a song.
type Link struct {
	URL             string `json:"url"`
	PlatformID      string `json:"platform_id"`
	PlatformName    string `json:"platform_name"`
	PlatformIconURL string `json:"platform_icon_url"`
}

// PlatformInfo represents a known platform row.
type PlatformInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// SuggestionKind distinguishes suggestion sources.
type SuggestionKind string

const (
	SuggestionTag    SuggestionKind = "tag"
	SuggestionArtist SuggestionKind = "artist"
)

// Suggestion is a search completion candidate drawn from tag or artist names.
type Suggestion struct {
	Kind  SuggestionKind `json:"type"`
	Value string         `json:"value"`
}

// NewSong is the submission input for creating a catalog entry.
type NewSong struct {
	Title       string
	Description string
	Artists     []string
	Tags        []string
	Links       []NewLink
}

// NewLink is the submission input for a song link.
type NewLink struct {
	URL        string
	PlatformID string
}

// Validate checks submission fields before any persistence happens.
// Validation failures never reach the database.
func (s NewSong) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("song title is required")
	}
	for i, link := range s.Links {
		if strings.TrimSpace(link.URL) == "" {
			return fmt.Errorf("link %d: url is required", i)
		}
		if strings.TrimSpace(link.PlatformID) == "" {
			return fmt.Errorf("link %d: platform is required", i)
		}
	}
	return nil
}

// PrimaryArtist returns the first artist name, or an empty string.
func (s Song) PrimaryArtist() string {
	if len(s.Artists) == 0 {
		return ""
	}
	return s.Artists[0].Name
}

// PrimaryLink returns the first link URL, or an empty string.
func (s Song) PrimaryLink() string {
	if len(s.Links) == 0 {
		return ""
	}
	return s.Links[0].URL
}
