package monitor

import "time"

type Status struct {
	Store     bool      `json:"store"`
	Driver    string    `json:"driver"`
	LastError string    `json:"last_error,omitempty"`
	LastCheck time.Time `json:"last_check"`
}
