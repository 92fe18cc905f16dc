package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrPlatformNotFound = fmt.Errorf("platform not found")

	// Playback errors
	ErrInvalidVideoURL   = fmt.Errorf("unrecognized youtube url")
	ErrInvalidSpotifyURL = fmt.Errorf("unrecognized spotify url")
	ErrAdapterUnmounted  = fmt.Errorf("adapter unmounted")
	ErrNoTransport       = fmt.Errorf("no transport available")

	// Resolver errors
	ErrResolveFailed      = fmt.Errorf("metadata resolution failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
