package app

import "time"

// TickMsg triggers a frame update: sweep animation and a poll of the
// latest scan state.
type TickMsg time.Time

// ScanStoppedMsg reports that the scan goroutine has exited.
type ScanStoppedMsg struct {
	Err error
}
