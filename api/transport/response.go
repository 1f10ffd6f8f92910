package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{Status: "error", Code: code, Error: err, Meta: meta}
}

// String returns the JSON form for logging.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// TaskView is a task as rendered in the list, with its countdown and colour.
type TaskView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Deadline  string `json:"deadline"`
	Remaining string `json:"remaining"`
	Status    string `json:"status"`
	Color     string `json:"color"`
	Selected  bool   `json:"selected"`
}

// DialogOutcome reports whether a dialog-driven action went ahead.
type DialogOutcome struct {
	Cancelled bool        `json:"cancelled"`
	Task      interface{} `json:"task,omitempty"`
}


type SelectionView struct {
	IDs      []string `json:"ids"`
	Selected *bool    `json:"selected,omitempty"`
}

type NotificationFeedView struct {
	Items interface{} `json:"items"`
	Last  uint64      `json:"last"`
}

type SettingsView struct {
	Theme      interface{}     `json:"theme"`
	Themes     []string        `json:"themes"`
	Features   map[string]bool `json:"features"`
	WindowDays int             `json:"alert_window_days"`
	Tick       string          `json:"countdown_tick"`
	Timezone   string          `json:"timezone"`
	Driver     string          `json:"store_driver"`
}
