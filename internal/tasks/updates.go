package tasks

import (
	"fmt"

	"github.com/desertthunder/songbox/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ScanCatalog Phase = iota
	ResolveLinks
	ApplyUpdates
)

func (p Phase) String() string {
	switch p {
	case ScanCatalog:
		return "scan_catalog"
	case ResolveLinks:
		return "resolve_links"
	case ApplyUpdates:
		return "apply_updates"
	default:
		return ""
	}
}

func scanCatalogUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanCatalog,
		Step:    step,
		Total:   total,
		Message: "Scanning catalog for songs missing metadata...",
	}
}

func resolveLinkUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveLinks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving: %s...", step, total, song.Title),
	}
}

func enrichedUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyUpdates,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, song.Title),
		Data:    song.ID,
	}
}

func enrichFailedUpdate(step, total int, song models.Song, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyUpdates,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, song.Title, err),
	}
}
