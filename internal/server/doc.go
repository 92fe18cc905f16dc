// Package server implements the local embed host: a small HTTP server that
// serves the hosted player page and relays lifecycle events and transport
// commands between the browser and the playback adapters.
//
// The host starts lazily. The first registration triggers startup exactly
// once; concurrent registrations share the same startup (and its error), and
// every later registration reuses the running instance.
package server
