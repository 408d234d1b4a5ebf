package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/lobo-bot/lobo/pkg/normalize"
)

func fullPanel() entities.Panel {
	return normalize.Panel(entities.Panel{
		PanelName:             "support",
		Mode:                  entities.PanelModeThread,
		NameTemplate:          "help-{count}",
		ThreadParentChannelID: "200",
		Deploy: entities.DeployRef{
			ChannelID: "300",
			MessageID: "400",
		},
		Permissions: entities.PanelPermissions{
			StaffRoleIDs:  []string{"1", "2"},
			ViewerRoleIDs: []string{"3"},
		},
		Form: entities.PanelForm{
			Fields: []entities.FormField{
				{Label: "Subject", Type: entities.FieldTypeText, Required: true},
				{Label: "Details", Type: entities.FieldTypeParagraph},
			},
		},
		Rules: entities.PanelRules{
			Title:          "Read first",
			Body:           "Be nice.",
			AllowedRoleIDs: []string{"5"},
			Policy:         entities.RulesPolicyEveryone,
		},
	})
}

func TestRenderCollectRoundTrip(t *testing.T) {
	t.Parallel()

	p := fullPanel()
	f := NewMemForm(AllControls()...)

	RenderPanel(f, p)
	got := CollectPanel(f, p)

	require.Equal(t, p, got)
}

func TestCollectMissingControlsPreserveBase(t *testing.T) {
	t.Parallel()

	base := fullPanel()

	// Only the identity tab is mounted. Everything the tab does not show
	// must survive collection untouched.
	f := NewMemForm(CtlPanelName, CtlEnabled, CtlMode, CtlNameTemplate)
	RenderPanel(f, base)
	require.True(t, f.SetString(CtlPanelName, "billing"))

	got := CollectPanel(f, base)

	require.Equal(t, "billing", got.PanelName)
	require.Equal(t, base.Permissions, got.Permissions)
	require.Equal(t, base.Form, got.Form)
	require.Equal(t, base.Rules, got.Rules)
	require.Equal(t, base.Close, got.Close)
	require.Equal(t, base.Deploy, got.Deploy)
}

func TestCollectNeverTakesMessageID(t *testing.T) {
	t.Parallel()

	base := fullPanel()
	f := NewMemForm(AllControls()...)
	RenderPanel(f, base)

	// Even a form claiming to carry a message ID control cannot change it.
	f.SetString(CtlDeployChannel, "999")
	got := CollectPanel(f, base)

	require.Equal(t, "999", got.Deploy.ChannelID)
	require.Equal(t, base.Deploy.MessageID, got.Deploy.MessageID)
}

func TestCollectDoesNotMutateBase(t *testing.T) {
	t.Parallel()

	base := fullPanel()
	f := NewMemForm(AllControls()...)
	RenderPanel(f, base)

	require.True(t, f.SetStringList(CtlStaffRoles, []string{"9"}))
	require.True(t, f.AppendFieldRow())

	got := CollectPanel(f, base)
	require.NotEqual(t, base.Permissions.StaffRoleIDs, got.Permissions.StaffRoleIDs)
	require.Equal(t, []string{"1", "2"}, base.Permissions.StaffRoleIDs)
	require.Len(t, base.Form.Fields, 2)
}

func TestCollectNormalizes(t *testing.T) {
	t.Parallel()

	f := NewMemForm(AllControls()...)
	RenderPanel(f, fullPanel())
	f.SetString(CtlMode, "voice")
	f.SetString(CtlRulesPolicy, "managers")
	f.SetStringList(CtlStaffRoles, []string{"1", "1", "2"})

	got := CollectPanel(f, fullPanel())

	require.Equal(t, entities.PanelModeChannel, got.Mode)
	require.Equal(t, entities.RulesPolicyStaffOnly, got.Rules.Policy)
	require.Equal(t, []string{"1", "2"}, got.Permissions.StaffRoleIDs)
}

func TestFieldRows(t *testing.T) {
	t.Parallel()

	f := NewMemForm(CtlFormFields)
	require.True(t, f.SetFields(nil))

	require.True(t, f.AppendFieldRow())
	require.True(t, f.AppendFieldRow())
	require.True(t, f.SetFieldRow(0, entities.FormField{Label: "Subject", Type: entities.FieldTypeText}))
	require.True(t, f.SetFieldRow(1, entities.FormField{Label: "Link", Type: entities.FieldTypeURL}))

	// Removing the first row shifts the second into its place.
	require.True(t, f.RemoveFieldRow(0))
	require.False(t, f.RemoveFieldRow(5))

	fields, ok := f.Fields()
	require.True(t, ok)
	require.Equal(t, []entities.FormField{{Label: "Link", Type: entities.FieldTypeURL}}, fields)
}

func TestUnmountedFieldList(t *testing.T) {
	t.Parallel()

	f := NewMemForm(CtlPanelName)
	require.False(t, f.AppendFieldRow())
	_, ok := f.Fields()
	require.False(t, ok)
}
