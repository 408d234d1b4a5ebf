package editor

import (
	"github.com/lobo-bot/lobo/pkg/entities"
)

// MemForm is an in-memory Form. Only the controls named at construction
// are mounted, mirroring a page where each tab mounts its own subset; the
// field-list control is mounted under CtlFormFields.
type MemForm struct {
	mounted map[string]struct{}
	strings map[string]string
	bools   map[string]bool
	ints    map[string]int
	lists   map[string][]string
	fields  []entities.FormField
}

// NewMemForm creates a MemForm with the given controls mounted.
func NewMemForm(names ...string) *MemForm {
	m := &MemForm{
		mounted: make(map[string]struct{}, len(names)),
		strings: make(map[string]string),
		bools:   make(map[string]bool),
		ints:    make(map[string]int),
		lists:   make(map[string][]string),
	}
	for _, n := range names {
		m.mounted[n] = struct{}{}
	}
	return m
}

// AllControls returns every control name the panel editor uses, for a
// form with all tabs mounted at once.
func AllControls() []string {
	return []string{
		CtlPanelName, CtlEnabled, CtlMode, CtlNameTemplate,
		CtlParentCategory, CtlThreadParent, CtlDeployChannel,
		CtlStaffRoles, CtlViewerRoles,
		CtlMaxOpen, CtlCooldown,
		CtlFormEnabled, CtlFormFields,
		CtlRulesEnabled, CtlRulesTitle, CtlRulesBody, CtlRulesEveryone, CtlRulesRoles, CtlRulesPolicy,
		CtlCloseConfirm, CtlClosedCategory, CtlCloseReopen, CtlCloseDeleteDays,
	}
}

func (m *MemForm) has(name string) bool {
	_, ok := m.mounted[name]
	return ok
}

func (m *MemForm) String(name string) (string, bool) {
	if !m.has(name) {
		return "", false
	}
	return m.strings[name], true
}

func (m *MemForm) SetString(name, value string) bool {
	if !m.has(name) {
		return false
	}
	m.strings[name] = value
	return true
}

func (m *MemForm) Bool(name string) (bool, bool) {
	if !m.has(name) {
		return false, false
	}
	return m.bools[name], true
}

func (m *MemForm) SetBool(name string, value bool) bool {
	if !m.has(name) {
		return false
	}
	m.bools[name] = value
	return true
}

func (m *MemForm) Int(name string) (int, bool) {
	if !m.has(name) {
		return 0, false
	}
	return m.ints[name], true
}

func (m *MemForm) SetInt(name string, value int) bool {
	if !m.has(name) {
		return false
	}
	m.ints[name] = value
	return true
}

func (m *MemForm) StringList(name string) ([]string, bool) {
	if !m.has(name) {
		return nil, false
	}
	return append([]string{}, m.lists[name]...), true
}

func (m *MemForm) SetStringList(name string, values []string) bool {
	if !m.has(name) {
		return false
	}
	m.lists[name] = append([]string{}, values...)
	return true
}

func (m *MemForm) Fields() ([]entities.FormField, bool) {
	if !m.has(CtlFormFields) {
		return nil, false
	}
	return append([]entities.FormField{}, m.fields...), true
}

func (m *MemForm) SetFields(fields []entities.FormField) bool {
	if !m.has(CtlFormFields) {
		return false
	}
	m.fields = append([]entities.FormField{}, fields...)
	return true
}

// AppendFieldRow appends an editable row with the documented defaults to
// the field list.
func (m *MemForm) AppendFieldRow() bool {
	if !m.has(CtlFormFields) {
		return false
	}
	m.fields = append(m.fields, entities.FormField{
		Type: entities.FieldTypeText,
	})
	return true
}

// RemoveFieldRow deletes the row at the given position; subsequent rows
// shift down.
func (m *MemForm) RemoveFieldRow(i int) bool {
	if !m.has(CtlFormFields) || i < 0 || i >= len(m.fields) {
		return false
	}
	m.fields = append(m.fields[:i], m.fields[i+1:]...)
	return true
}

// SetFieldRow overwrites the row at the given position.
func (m *MemForm) SetFieldRow(i int, f entities.FormField) bool {
	if !m.has(CtlFormFields) || i < 0 || i >= len(m.fields) {
		return false
	}
	m.fields[i] = f
	return true
}
