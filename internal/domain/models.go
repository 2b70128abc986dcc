package domain

import "time"

// HostStatus is one row of the status table: the last observed liveness of a
// host plus its current consecutive-failure streak.
type HostStatus struct {
	Host      string    `json:"host"`
	Alive     bool      `json:"alive"`
	Failures  int       `json:"failures"`
	CheckedAt time.Time `json:"checked_at"`
}

// AlertEvent is a notification intent produced by the status gate.
// Alive=false is a down alert, Alive=true a recovery. IncludeMention is set
// only on the first down alert of an outage episode.
type AlertEvent struct {
	Host           string    `json:"host"`
	Alive          bool      `json:"alive"`
	At             time.Time `json:"at"`
	IncludeMention bool      `json:"include_mention"`
	FailureCount   int       `json:"failure_count"`
}
