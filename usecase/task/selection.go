package task

import (
	"github.com/fastygo/todo/domain"
)

// ToggleSelection adds id to the selection set or removes it if already present.
// It reports whether the task is selected afterwards.
func (m *Manager) ToggleSelection(id string) (bool, error) {
	if !m.opts.Selection {
		return false, domain.ErrSelectionDisabled
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexLocked(id) < 0 {
		return false, domain.ErrTaskNotFound
	}
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
		return false, nil
	}
	m.selected[id] = struct{}{}
	return true, nil
}

// IsSelected reports whether id is in the selection set.
func (m *Manager) IsSelected(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.selected[id]
	return ok
}

// Selection returns the selected identifiers in display order.
func (m *Manager) Selection() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.selected))
	for _, task := range m.tasks {
		if _, ok := m.selected[task.ID]; ok {
			ids = append(ids, task.ID)
		}
	}
	return ids
}

// ClearSelection empties the selection set.
func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = make(map[string]struct{})
}

// SelectionEnabled reports whether the selection capability is on.
func (m *Manager) SelectionEnabled() bool {
	return m.opts.Selection
}
