// Package lifecycle holds shared lifecycle constants for deliveries.
package lifecycle

import "time"

// DefaultTimeout is the grace period for shutting down a delivery.
const DefaultTimeout = 10 * time.Second
