package monitor

import "time"

type Status struct {
	Driver    string    `json:"driver"`
	Online    bool      `json:"online"`
	Entries   int       `json:"entries,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	LastCheck time.Time `json:"last_check"`
}
