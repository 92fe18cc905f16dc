// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// CatalogToCSV converts songs to CSV format with columns: ID, Title, Artists, Tags, Links, Created
func CatalogToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Tags", "Links", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			joinArtists(song.Artists),
			joinTags(song.Tags),
			joinLinks(song.Links),
			song.CreatedAt.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CatalogToMarkdown converts songs to a Markdown listing
func CatalogToMarkdown(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Song Catalog\n\n")
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range songs {
		artistPart := ""
		if artist := song.PrimaryArtist(); artist != "" {
			artistPart = fmt.Sprintf("%s - ", artist)
		}
		tagPart := ""
		if len(song.Tags) > 0 {
			tagPart = fmt.Sprintf(" [%s]", joinTags(song.Tags))
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s%s\n", i+1, artistPart, song.Title, tagPart))
		for _, link := range song.Links {
			buf.WriteString(fmt.Sprintf("   - [%s](%s)\n", link.PlatformName, link.URL))
		}
	}

	return buf.Bytes(), nil
}

// CatalogToText converts songs to plain text format
func CatalogToText(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))

	for i, song := range songs {
		artistPart := ""
		if artist := song.PrimaryArtist(); artist != "" {
			artistPart = fmt.Sprintf("%s - ", artist)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, artistPart, song.Title))
	}

	return buf.Bytes(), nil
}

// WriteCatalogExport writes songs to path in the requested format (csv,
// markdown, or text). An empty path derives a filename from the format.
func WriteCatalogExport(songs []models.Song, path, format string) (string, error) {
	var data []byte
	var err error
	var ext string

	switch strings.ToLower(format) {
	case "csv", "":
		data, err = CatalogToCSV(songs)
		ext = "csv"
	case "markdown", "md":
		data, err = CatalogToMarkdown(songs)
		ext = "md"
	case "text", "txt":
		data, err = CatalogToText(songs)
		ext = "txt"
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "catalog." + ext
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func joinArtists(artists []models.Artist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, "; ")
}

func joinTags(tags []models.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, "; ")
}

func joinLinks(links []models.Link) string {
	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	return strings.Join(urls, " ")
}
