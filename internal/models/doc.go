// Package models defines domain entities shared across the songbox catalog and player.
//
// The package contains three categories of types:
//
// 1. Catalog entities: persisted rows read back from the catalog store
//   - [Song] : A catalog entry with its artists, tags, and platform links
//   - [Artist], [Tag] : Named rows created-or-reused by name on submission
//   - [Link] : A playable URL attached to a song, resolved to a platform
//   - [PlatformInfo] : A known platform row (name, icon)
//
// 2. Playback types: values flowing through the queue and sidebar
//   - [QueueItem] : A playable entry identified by URL
//   - [Platform] : Tagged variant produced once by [ClassifyURL]
//
// 3. Submission inputs: [NewSong] and [NewLink], validated before persistence.
package models
