// Package lifecycle holds timing constants shared by fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds pings, publisher shutdown and HTTP shutdown.
const DefaultTimeout = 10 * time.Second

// SeedTimeout bounds a whole seed run, which executes in one transaction.
const SeedTimeout = 5 * time.Minute
