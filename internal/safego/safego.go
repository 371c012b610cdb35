// Package safego provides a panic-recovering goroutine launcher for background work.
package safego

import "log/slog"

// Go launches fn in a new goroutine and recovers any panic, logging it instead
// of crashing the process. Use it for fire-and-forget goroutines (stats
// collectors, async audit writes) where an unrecovered panic would silently
// kill the goroutine forever.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered panic in background goroutine", "panic", r)
			}
		}()
		fn()
	}()
}
