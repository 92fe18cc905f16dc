package models

// QueueItem is a playable entry in the queue. URL is the identity key; the
// queue never holds two items with the same URL.
type QueueItem struct {
	URL      string   `json:"url"`
	Title    string   `json:"title,omitempty"`
	Artist   string   `json:"artist,omitempty"`
	Platform Platform `json:"platform,omitempty"`
}

// Merge returns a copy of item with other's non-empty fields layered on top.
// Items are replaced wholesale at their queue position, never mutated in place.
func (item QueueItem) Merge(other QueueItem) QueueItem {
	merged := item
	if other.Title != "" {
		merged.Title = other.Title
	}
	if other.Artist != "" {
		merged.Artist = other.Artist
	}
	if other.Platform != "" && other.Platform != PlatformUnknown {
		merged.Platform = other.Platform
	}
	return merged
}

// Display returns the best human-readable label for the item.
func (item QueueItem) Display() string {
	if item.Title != "" {
		return item.Title
	}
	return item.URL
}
