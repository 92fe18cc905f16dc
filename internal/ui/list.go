package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/songbox/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	parts := []string{}
	if artist := i.song.PrimaryArtist(); artist != "" {
		parts = append(parts, artist)
	}
	if len(i.song.Links) > 0 {
		parts = append(parts, i.song.Links[0].PlatformName)
	}
	if len(i.song.Tags) > 0 {
		names := make([]string, len(i.song.Tags))
		for j, tag := range i.song.Tags {
			names[j] = tag.Name
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	if len(parts) == 0 {
		return "no details"
	}
	return strings.Join(parts, " • ")
}

// queueLine renders one row of the queue panel.
func queueLine(item models.QueueItem, isCurrent, isCursor bool) string {
	marker := "  "
	if isCurrent {
		marker = "▶ "
	}
	line := marker + item.Display()
	if isCursor {
		line = "> " + line
	} else {
		line = "  " + line
	}
	return line
}

// songItems converts catalog songs into list items.
func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, song := range songs {
		items[i] = songItem{song: song}
	}
	return items
}

// queueItemFromSong builds the queue entry for a song's primary link.
func queueItemFromSong(song models.Song) (models.QueueItem, bool) {
	url := song.PrimaryLink()
	if url == "" {
		return models.QueueItem{}, false
	}
	return models.QueueItem{
		URL:      url,
		Title:    song.Title,
		Artist:   song.PrimaryArtist(),
		Platform: models.ClassifyURL(url),
	}, true
}

// trackLabel is the player bar's description of the active item.
func trackLabel(item *models.QueueItem, activeURL string) string {
	if item != nil {
		return item.Display()
	}
	if activeURL != "" {
		return activeURL
	}
	return "nothing playing"
}

// positionLabel renders "2/5" style queue positions.
func positionLabel(current, total int) string {
	if total == 0 || current < 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", current+1, total)
}
