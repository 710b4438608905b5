package state

import "time"

const (
	// DefaultSignalVelocity is 2/3 of light speed, typical for copper
	// and fiber, in length-units per second.
	DefaultSignalVelocity = 2e8

	DefaultHistorySize = 10

	// HopRetention is how long diagnostic hop records are kept.
	HopRetention = time.Minute
)
