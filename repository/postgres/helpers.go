package postgres

import (
	"encoding/json"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

// marshalPatch encodes only the fields present in the patch so the result can be
// merged into an existing document with the jsonb || operator.
func marshalPatch(patch domain.TaskPatch) ([]byte, error) {
	if patch.IsEmpty() {
		return []byte("{}"), nil
	}
	return json.Marshal(patch)
}

func decodeTask(id string, doc []byte) (domain.Task, error) {
	var fields repository.TaskFields
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &fields); err != nil {
			return domain.Task{}, err
		}
	}
	return domain.Task{
		ID:        id,
		Text:      fields.Text,
		Completed: fields.Completed,
		Deadline:  fields.Deadline,
	}, nil
}
