package service

import "time"

// SetAnnounceTimeout overrides announceTimeout and returns a restore func.
func SetAnnounceTimeout(d time.Duration) func() {
	prev := announceTimeout
	announceTimeout = d
	return func() { announceTimeout = prev }
}
