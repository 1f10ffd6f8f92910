package transport

// TaskRequest is the body of the add and edit dialogs. Cancel, or an empty
// body, dismisses the dialog without changes.
type TaskRequest struct {
	Text     string `json:"text"`
	Deadline string `json:"deadline"`
	Cancel   bool   `json:"cancel,omitempty"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}
