package domain

import (
	"testing"
	"time"
)

func TestParseDeadline(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"datetime-local", "2025-01-10T09:00", time.Date(2025, 1, 10, 9, 0, 0, 0, loc), false},
		{"with seconds", "2025-01-10T09:00:30", time.Date(2025, 1, 10, 9, 0, 30, 0, loc), false},
		{"rfc3339 keeps its zone", "2025-01-10T09:00:00Z", time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), false},
		{"date only", "2025-01-10", time.Date(2025, 1, 10, 0, 0, 0, 0, loc), false},
		{"surrounding spaces", "  2025-01-10T09:00 ", time.Date(2025, 1, 10, 9, 0, 0, 0, loc), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeadline(tt.input, loc)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !IsDomainError(err, ErrCodeInvalid) {
					t.Errorf("expected INVALID error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		deadline string
		wantErr  error
	}{
		{"valid", " Write report ", "2025-01-10T09:00", nil},
		{"missing text", "  ", "2025-01-10T09:00", ErrTextRequired},
		{"missing deadline", "Write report", "", ErrDeadlineRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, deadline, err := ValidateFields(tt.text, tt.deadline, time.UTC)
			if err != tt.wantErr {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if err == nil && (text != "Write report" || deadline != "2025-01-10T09:00") {
				t.Errorf("fields not trimmed: %q %q", text, deadline)
			}
		})
	}

	if _, _, err := ValidateFields("x", "soon", time.UTC); !IsDomainError(err, ErrCodeInvalid) {
		t.Errorf("expected INVALID for unparseable deadline, got %v", err)
	}
}

func TestTaskPatchApply(t *testing.T) {
	text := "new"
	done := true
	task := Task{ID: "a", Text: "old", Deadline: "2025-01-10T09:00"}

	got := TaskPatch{Text: &text, Completed: &done}.Apply(task)
	if got.Text != "new" || !got.Completed || got.Deadline != task.Deadline || got.ID != "a" {
		t.Errorf("unexpected patched task %+v", got)
	}
	if task.Text != "old" {
		t.Error("Apply must not mutate its argument")
	}
	if !(TaskPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
}

func TestStoreErrorClassification(t *testing.T) {
	err := StoreError("delete", ErrTaskNotFound)
	if !IsDomainError(err, ErrCodeStore) {
		t.Errorf("expected STORE code, got %v", err)
	}
	if err.Error() != "store delete failed: task not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
