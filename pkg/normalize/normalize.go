// Package normalize repairs partially specified or legacy shaped
// configuration records. It is the only place in the repository that is
// allowed to substitute defaults: every record is passed through here
// after load, after collection from the editor and before every save, so
// no other component ever sees an absent sub-object or an unrecognised
// enum value.
package normalize

import (
	"github.com/lobo-bot/lobo/pkg/entities"
)

// Config normalizes a guild configuration document in place. Every panel
// is normalized and the panel slice itself is never nil.
func Config(cfg *entities.GuildConfig) {
	if cfg == nil {
		return
	}
	if cfg.Ticket.Panels == nil {
		cfg.Ticket.Panels = []entities.Panel{}
	}
	for i := range cfg.Ticket.Panels {
		cfg.Ticket.Panels[i] = Panel(cfg.Ticket.Panels[i])
	}
}

// Panel returns a fully populated copy of raw. It is total and
// idempotent: absent values, nil sub-slices and unrecognised enum members
// are replaced with their documented defaults, everything else passes
// through unchanged. It never substitutes a rules body; that happens at
// save time only.
func Panel(raw entities.Panel) entities.Panel {
	p := raw

	if p.PanelName == "" {
		p.PanelName = entities.DefaultPanelName
	}
	if p.Enabled == nil {
		p.Enabled = boolPtr(true)
	}
	switch p.Mode {
	case entities.PanelModeChannel, entities.PanelModeThread:
	default:
		p.Mode = entities.PanelModeChannel
	}
	if p.NameTemplate == "" {
		p.NameTemplate = entities.DefaultNameTemplate
	}

	p.Permissions.StaffRoleIDs = uniqueIDs(p.Permissions.StaffRoleIDs)
	p.Permissions.ViewerRoleIDs = uniqueIDs(p.Permissions.ViewerRoleIDs)

	p.Limits.MaxOpenPerUser = nonNegative(p.Limits.MaxOpenPerUser, entities.DefaultMaxOpenPerUser)
	p.Limits.CooldownMinutes = nonNegative(p.Limits.CooldownMinutes, entities.DefaultCooldownMinutes)

	if p.Form.Enabled == nil {
		p.Form.Enabled = boolPtr(true)
	}
	if p.Form.Fields == nil {
		p.Form.Fields = []entities.FormField{}
	}
	for i := range p.Form.Fields {
		p.Form.Fields[i] = Field(p.Form.Fields[i])
	}

	if p.Rules.Enabled == nil {
		p.Rules.Enabled = boolPtr(true)
	}
	if p.Rules.Title == "" {
		p.Rules.Title = entities.DefaultRulesTitle
	}
	if p.Rules.AllowedRoleIDs == nil {
		p.Rules.AllowedRoleIDs = []string{}
	}
	switch p.Rules.Policy {
	case entities.RulesPolicyStaffOnly, entities.RulesPolicyEveryone:
	default:
		p.Rules.Policy = entities.RulesPolicyStaffOnly
	}

	if p.Close.ConfirmRequired == nil {
		p.Close.ConfirmRequired = boolPtr(true)
	}
	if p.Close.AllowReopen == nil {
		p.Close.AllowReopen = boolPtr(true)
	}
	p.Close.DeleteAfterDays = nonNegative(p.Close.DeleteAfterDays, entities.DefaultDeleteAfterDays)

	return p
}

// Field returns a fully populated copy of a form field, substituting the
// paragraph type for unrecognised input types.
func Field(raw entities.FormField) entities.FormField {
	f := raw
	switch f.Type {
	case entities.FieldTypeText, entities.FieldTypeParagraph, entities.FieldTypeURL:
	default:
		f.Type = entities.FieldTypeParagraph
	}
	return f
}

// uniqueIDs deduplicates a role ID set while keeping first-seen order, so
// normalization is stable across repeated applications.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nonNegative(v *int, def int) *int {
	if v == nil || *v < 0 {
		d := def
		return &d
	}
	return v
}

func boolPtr(v bool) *bool {
	return &v
}
