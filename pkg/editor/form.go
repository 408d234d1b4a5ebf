package editor

import (
	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/normalize"
)

// Control names for the panel editor. Which controls are mounted depends
// on the active tab; collection tolerates any of them being absent.
const (
	CtlPanelName       = "panel_name"
	CtlEnabled         = "enabled"
	CtlMode            = "mode"
	CtlNameTemplate    = "name_template"
	CtlParentCategory  = "parent_category_id"
	CtlThreadParent    = "thread_parent_channel_id"
	CtlDeployChannel   = "deploy_channel_id"
	CtlStaffRoles      = "staff_role_ids"
	CtlViewerRoles     = "viewer_role_ids"
	CtlMaxOpen         = "max_open_per_user"
	CtlCooldown        = "cooldown_minutes"
	CtlFormEnabled     = "form_enabled"
	CtlFormFields      = "form_fields"
	CtlRulesEnabled    = "rules_enabled"
	CtlRulesTitle      = "rules_title"
	CtlRulesBody       = "rules_body"
	CtlRulesEveryone   = "rules_allow_everyone_mention"
	CtlRulesRoles      = "rules_allowed_role_ids"
	CtlRulesPolicy     = "rules_policy"
	CtlCloseConfirm    = "close_confirm_required"
	CtlClosedCategory  = "close_closed_category_id"
	CtlCloseReopen     = "close_allow_reopen"
	CtlCloseDeleteDays = "close_delete_after_days"
)

// Form is a fixed set of named input controls plus one dynamic field-list
// control. Getters report whether the named control is mounted; setters
// report the same and are no-ops on unmounted controls. The field list is
// keyed purely by position: rows are appended, removed and re-read in
// visual order.
type Form interface {
	// String reads a text control.
	String(name string) (string, bool)

	// SetString writes a text control.
	SetString(name, value string) bool

	// Bool reads a checkbox control.
	Bool(name string) (bool, bool)

	// SetBool writes a checkbox control.
	SetBool(name string, value bool) bool

	// Int reads a numeric control.
	Int(name string) (int, bool)

	// SetInt writes a numeric control.
	SetInt(name string, value int) bool

	// StringList reads a multi-value control, such as a role picker.
	StringList(name string) ([]string, bool)

	// SetStringList writes a multi-value control.
	SetStringList(name string, values []string) bool

	// Fields reads the dynamic field-list control in current visual order.
	Fields() ([]entities.FormField, bool)

	// SetFields rebuilds the dynamic field-list control, one row per field.
	SetFields(fields []entities.FormField) bool
}

// RenderPanel writes a panel into the form's named controls. Controls that
// are not mounted on the current tab are skipped.
func RenderPanel(f Form, p entities.Panel) {
	f.SetString(CtlPanelName, p.PanelName)
	if p.Enabled != nil {
		f.SetBool(CtlEnabled, *p.Enabled)
	}
	f.SetString(CtlMode, string(p.Mode))
	f.SetString(CtlNameTemplate, p.NameTemplate)
	f.SetString(CtlParentCategory, p.ParentCategoryID)
	f.SetString(CtlThreadParent, p.ThreadParentChannelID)
	f.SetString(CtlDeployChannel, p.Deploy.ChannelID)

	f.SetStringList(CtlStaffRoles, p.Permissions.StaffRoleIDs)
	f.SetStringList(CtlViewerRoles, p.Permissions.ViewerRoleIDs)

	if p.Limits.MaxOpenPerUser != nil {
		f.SetInt(CtlMaxOpen, *p.Limits.MaxOpenPerUser)
	}
	if p.Limits.CooldownMinutes != nil {
		f.SetInt(CtlCooldown, *p.Limits.CooldownMinutes)
	}

	if p.Form.Enabled != nil {
		f.SetBool(CtlFormEnabled, *p.Form.Enabled)
	}
	f.SetFields(p.Form.Fields)

	if p.Rules.Enabled != nil {
		f.SetBool(CtlRulesEnabled, *p.Rules.Enabled)
	}
	f.SetString(CtlRulesTitle, p.Rules.Title)
	f.SetString(CtlRulesBody, p.Rules.Body)
	f.SetBool(CtlRulesEveryone, p.Rules.AllowEveryoneMention)
	f.SetStringList(CtlRulesRoles, p.Rules.AllowedRoleIDs)
	f.SetString(CtlRulesPolicy, string(p.Rules.Policy))

	if p.Close.ConfirmRequired != nil {
		f.SetBool(CtlCloseConfirm, *p.Close.ConfirmRequired)
	}
	f.SetString(CtlClosedCategory, p.Close.ClosedCategoryID)
	if p.Close.AllowReopen != nil {
		f.SetBool(CtlCloseReopen, *p.Close.AllowReopen)
	}
	if p.Close.DeleteAfterDays != nil {
		f.SetInt(CtlCloseDeleteDays, *p.Close.DeleteAfterDays)
	}
}

// CollectPanel reads every mounted control back into a deep copy of base
// and normalizes the result. A missing control leaves the corresponding
// value untouched, so saving from one tab never destroys data belonging
// to another. The deployed message ID is never collected; only a deploy
// response may set it.
func CollectPanel(f Form, base entities.Panel) entities.Panel {
	p := ClonePanel(base)

	if v, ok := f.String(CtlPanelName); ok {
		p.PanelName = v
	}
	if v, ok := f.Bool(CtlEnabled); ok {
		b := v
		p.Enabled = &b
	}
	if v, ok := f.String(CtlMode); ok {
		p.Mode = entities.PanelMode(v)
	}
	if v, ok := f.String(CtlNameTemplate); ok {
		p.NameTemplate = v
	}
	if v, ok := f.String(CtlParentCategory); ok {
		p.ParentCategoryID = v
	}
	if v, ok := f.String(CtlThreadParent); ok {
		p.ThreadParentChannelID = v
	}
	if v, ok := f.String(CtlDeployChannel); ok {
		p.Deploy.ChannelID = v
	}

	if v, ok := f.StringList(CtlStaffRoles); ok {
		p.Permissions.StaffRoleIDs = v
	}
	if v, ok := f.StringList(CtlViewerRoles); ok {
		p.Permissions.ViewerRoleIDs = v
	}

	if v, ok := f.Int(CtlMaxOpen); ok {
		n := v
		p.Limits.MaxOpenPerUser = &n
	}
	if v, ok := f.Int(CtlCooldown); ok {
		n := v
		p.Limits.CooldownMinutes = &n
	}

	if v, ok := f.Bool(CtlFormEnabled); ok {
		b := v
		p.Form.Enabled = &b
	}
	if v, ok := f.Fields(); ok {
		p.Form.Fields = v
	}

	if v, ok := f.Bool(CtlRulesEnabled); ok {
		b := v
		p.Rules.Enabled = &b
	}
	if v, ok := f.String(CtlRulesTitle); ok {
		p.Rules.Title = v
	}
	if v, ok := f.String(CtlRulesBody); ok {
		p.Rules.Body = v
	}
	if v, ok := f.Bool(CtlRulesEveryone); ok {
		p.Rules.AllowEveryoneMention = v
	}
	if v, ok := f.StringList(CtlRulesRoles); ok {
		p.Rules.AllowedRoleIDs = v
	}
	if v, ok := f.String(CtlRulesPolicy); ok {
		p.Rules.Policy = entities.RulesPolicy(v)
	}

	if v, ok := f.Bool(CtlCloseConfirm); ok {
		b := v
		p.Close.ConfirmRequired = &b
	}
	if v, ok := f.String(CtlClosedCategory); ok {
		p.Close.ClosedCategoryID = v
	}
	if v, ok := f.Bool(CtlCloseReopen); ok {
		b := v
		p.Close.AllowReopen = &b
	}
	if v, ok := f.Int(CtlCloseDeleteDays); ok {
		n := v
		p.Close.DeleteAfterDays = &n
	}

	return normalize.Panel(p)
}

// ClonePanel returns a deep copy of a panel.
func ClonePanel(p entities.Panel) entities.Panel {
	c := p
	c.Enabled = cloneBool(p.Enabled)
	c.Permissions.StaffRoleIDs = cloneStrings(p.Permissions.StaffRoleIDs)
	c.Permissions.ViewerRoleIDs = cloneStrings(p.Permissions.ViewerRoleIDs)
	c.Limits.MaxOpenPerUser = cloneInt(p.Limits.MaxOpenPerUser)
	c.Limits.CooldownMinutes = cloneInt(p.Limits.CooldownMinutes)
	c.Form.Enabled = cloneBool(p.Form.Enabled)
	if p.Form.Fields != nil {
		c.Form.Fields = append([]entities.FormField{}, p.Form.Fields...)
	}
	c.Rules.Enabled = cloneBool(p.Rules.Enabled)
	c.Rules.AllowedRoleIDs = cloneStrings(p.Rules.AllowedRoleIDs)
	c.Close.ConfirmRequired = cloneBool(p.Close.ConfirmRequired)
	c.Close.AllowReopen = cloneBool(p.Close.AllowReopen)
	c.Close.DeleteAfterDays = cloneInt(p.Close.DeleteAfterDays)
	return c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	b := *v
	return &b
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneStrings(v []string) []string {
	if v == nil {
		return nil
	}
	return append([]string{}, v...)
}
