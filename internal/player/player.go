// Package player implements the per-platform playback adapters.
//
// Adapters share a small capability set (mount, unmount, lifecycle event
// registration) and deliberately little else: YouTube playback is scriptable
// through the hosted IFrame API page, so its adapter exposes a transport and
// fires ended on end-of-track; Spotify embeds are opaque, so that adapter can
// only report load errors and never fires ended.
package player

import "context"

// Event identifies an adapter lifecycle event.
type Event string

const (
	EventReady Event = "ready"
	EventEnded Event = "ended"
	EventError Event = "error"
)

// Payload carries event details to handlers.
type Payload struct {
	Message string
}

// Adapter is the capability set the sidebar controller drives playback with.
type Adapter interface {
	// Mount begins playback of the URL. Completion is asynchronous; outcome
	// arrives as a ready or error event.
	Mount(ctx context.Context, url string) error

	// Unmount tears the current playback down best-effort.
	Unmount()

	// On registers a handler for a lifecycle event. Multiple handlers per
	// event are allowed and run in registration order.
	On(event Event, fn func(Payload))
}

// Transport sends play/pause commands to a mounted player. Only adapters
// whose platform supports scripted control provide one.
type Transport interface {
	Play() error
	Pause() error
}
