// Package sidebar implements the persistent player controller: it watches the
// queue, selects and drives the right playback adapter for the active item,
// and owns the presentation state (collapsed, playing, inline errors) the UI
// renders the sidebar from.
package sidebar

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/player"
	"github.com/desertthunder/songbox/internal/queue"
)

// transporter is satisfied by adapters that support scripted play/pause.
type transporter interface {
	Transport() player.Transport
}

// Snapshot is the sidebar state handed to subscribers.
type Snapshot struct {
	ActiveURL   string
	Platform    models.Platform
	Playing     bool
	Collapsed   bool
	ErrMsg      string
	CanNext     bool
	CanPrevious bool
	Queue       queue.Snapshot
}

// Controller wires queue snapshots to playback adapters.
//
// The active URL is the queue's current item, falling back to a directly-set
// preview URL when the queue is empty. Each active URL is classified once;
// the matching adapter mounts it and its ended event is the only auto-advance
// path back into the queue.
type Controller struct {
	queue    *queue.Store
	adapters map[models.Platform]player.Adapter
	logger   *log.Logger

	mu         sync.Mutex
	activeURL  string
	platform   models.Platform
	previewURL string
	playing    bool
	collapsed  bool
	errMsg     string

	nextSubID int
	subs      map[int]func(Snapshot)

	unsubscribe func()
}

// New creates a controller over the queue and the per-platform adapters.
func New(q *queue.Store, adapters map[models.Platform]player.Adapter, logger *log.Logger) *Controller {
	c := &Controller{
		queue:    q,
		adapters: adapters,
		platform: models.PlatformUnknown,
		logger:   logger,
		subs:     make(map[int]func(Snapshot)),
	}

	for _, adapter := range adapters {
		adapter.On(player.EventReady, func(player.Payload) { c.onReady() })
		adapter.On(player.EventEnded, func(player.Payload) { c.onEnded() })
		adapter.On(player.EventError, func(p player.Payload) { c.onError(p.Message) })
	}

	c.unsubscribe = q.Subscribe(func(queue.Snapshot) { c.sync() })
	return c
}

// Close detaches the controller from the queue and unmounts the active
// adapter.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}

	c.mu.Lock()
	platform := c.platform
	c.activeURL = ""
	c.platform = models.PlatformUnknown
	c.mu.Unlock()

	if adapter, ok := c.adapters[platform]; ok {
		adapter.Unmount()
	}
}

// Subscribe registers fn to run after every state change. The returned
// function unsubscribes.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// State returns the current sidebar snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Preview plays a URL directly without queueing it. Only effective while the
// queue is empty; a queued current item always wins.
func (c *Controller) Preview(url string) {
	c.mu.Lock()
	c.previewURL = url
	c.mu.Unlock()
	c.sync()
}

// TogglePlay flips the playing flag and sends the matching transport command.
// Platforms without scripted control make this a no-op.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	adapter, ok := c.adapters[c.platform]
	if c.activeURL == "" || !ok {
		c.mu.Unlock()
		return
	}
	tr, ok := adapter.(transporter)
	if !ok {
		c.mu.Unlock()
		return
	}

	c.playing = !c.playing
	playing := c.playing
	c.notifyLocked()

	transport := tr.Transport()
	var err error
	if playing {
		err = transport.Play()
	} else {
		err = transport.Pause()
	}
	if err != nil {
		c.logger.Warn("transport command failed", "playing", playing, "err", err)
	}
}

// Next advances the queue. Delegates entirely; the queue's no-wraparound rule
// makes this a no-op at the tail.
func (c *Controller) Next() { c.queue.Next() }

// Previous steps the queue back, a no-op at the head.
func (c *Controller) Previous() { c.queue.Previous() }

// CanNext reports whether a next track exists, for disabled affordances.
func (c *Controller) CanNext() bool { return c.queue.HasNext() }

// CanPrevious reports whether a previous track exists.
func (c *Controller) CanPrevious() bool { return c.queue.HasPrevious() }

// SetCollapsed sets the sidebar's collapsed flag. Pure presentation;
// playback is unaffected.
func (c *Controller) SetCollapsed(collapsed bool) {
	c.mu.Lock()
	if c.collapsed == collapsed {
		c.mu.Unlock()
		return
	}
	c.collapsed = collapsed
	c.notifyLocked()
}

// SelectQueueIndex jumps playback to the queue item at i using its stored
// metadata. Out-of-range indices are ignored.
func (c *Controller) SelectQueueIndex(i int) {
	snap := c.queue.State()
	if i < 0 || i >= len(snap.Items) {
		return
	}
	c.queue.PlayNow(snap.Items[i])
}

// sync reconciles the active URL with the queue's current item, swapping
// adapters when it changes.
func (c *Controller) sync() {
	snap := c.queue.State()

	c.mu.Lock()
	target := c.previewURL
	if snap.CurrentItem != nil {
		target = snap.CurrentItem.URL
	}

	if target == c.activeURL {
		c.notifyLocked()
		return
	}

	oldPlatform := c.platform
	c.activeURL = target
	c.platform = models.ClassifyURL(target)
	if target == "" {
		c.platform = models.PlatformUnknown
	}
	newPlatform := c.platform
	c.playing = false
	c.errMsg = ""
	c.notifyLocked()

	if adapter, ok := c.adapters[oldPlatform]; ok {
		adapter.Unmount()
	}

	if target == "" {
		return
	}

	adapter, ok := c.adapters[newPlatform]
	if !ok {
		c.onError("no player available for this link")
		return
	}
	if err := adapter.Mount(context.Background(), target); err != nil {
		// The adapter already fired its error event; nothing more to do.
		c.logger.Warn("failed to mount playback", "url", target, "err", err)
	}
}

// onReady marks playback started once the player page reports in.
func (c *Controller) onReady() {
	c.mu.Lock()
	c.playing = true
	c.errMsg = ""
	c.notifyLocked()
}

// onEnded advances the queue. This is the sole auto-advance path; the item
// transition flows back through sync via the queue subscription.
func (c *Controller) onEnded() {
	c.mu.Lock()
	c.playing = false
	c.mu.Unlock()
	c.queue.Next()
}

// onError records an inline message. The item stays queued so the user can
// skip past it.
func (c *Controller) onError(message string) {
	c.mu.Lock()
	c.playing = false
	c.errMsg = message
	c.notifyLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		ActiveURL:   c.activeURL,
		Platform:    c.platform,
		Playing:     c.playing,
		Collapsed:   c.collapsed,
		ErrMsg:      c.errMsg,
		CanNext:     c.queue.HasNext(),
		CanPrevious: c.queue.HasPrevious(),
		Queue:       c.queue.State(),
	}
}

// notifyLocked snapshots state and subscribers, releases the lock, and fans
// out synchronously.
func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
