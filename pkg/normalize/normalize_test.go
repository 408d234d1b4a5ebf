package normalize

import (
	"encoding/json"
	"testing"

	"github.com/lobo-bot/lobo/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestPanelDefaults(t *testing.T) {
	p := Panel(entities.Panel{})

	require.Equal(t, "panel", p.PanelName)
	require.NotNil(t, p.Enabled)
	require.True(t, *p.Enabled)
	require.Equal(t, entities.PanelModeChannel, p.Mode)
	require.Equal(t, "ticket-{count}-{user}", p.NameTemplate)
	require.NotNil(t, p.Limits.MaxOpenPerUser)
	require.Equal(t, 5, *p.Limits.MaxOpenPerUser)
	require.NotNil(t, p.Limits.CooldownMinutes)
	require.Equal(t, 30, *p.Limits.CooldownMinutes)
	require.NotNil(t, p.Close.DeleteAfterDays)
	require.Equal(t, 14, *p.Close.DeleteAfterDays)
	require.Equal(t, entities.RulesPolicyStaffOnly, p.Rules.Policy)
	require.NotNil(t, p.Close.ConfirmRequired)
	require.True(t, *p.Close.ConfirmRequired)
	require.NotNil(t, p.Close.AllowReopen)
	require.True(t, *p.Close.AllowReopen)

	// Every collection must be present after one application.
	require.NotNil(t, p.Permissions.StaffRoleIDs)
	require.NotNil(t, p.Permissions.ViewerRoleIDs)
	require.NotNil(t, p.Form.Fields)
	require.NotNil(t, p.Rules.AllowedRoleIDs)

	// The rules body is left alone; it is only filled at save time.
	require.Empty(t, p.Rules.Body)
}

func TestPanelIdempotent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "Empty",
			raw:  `{}`,
		},
		{
			name: "LegacyShape",
			raw:  `{"panel_name":"support","mode":"modal","limits":{"max_open_per_user":-3}}`,
		},
		{
			name: "UnknownFieldType",
			raw:  `{"form":{"fields":[{"label":"Body","type":"essay"}]}}`,
		},
		{
			name: "DuplicateRoles",
			raw:  `{"permissions":{"staff_role_ids":["1","2","1",""]}}`,
		},
		{
			name: "FullyPopulated",
			raw: `{"panel_name":"bugs","enabled":false,"mode":"thread","name_template":"bug-{count}",
				"thread_parent_channel_id":"123","deploy":{"channel_id":"456","message_id":"789"},
				"limits":{"max_open_per_user":0,"cooldown_minutes":0},
				"rules":{"enabled":false,"title":"Read me","body":"be nice","policy":"everyone"},
				"close":{"confirm_required":false,"allow_reopen":false,"delete_after_days":1}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw entities.Panel
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &raw))

			once := Panel(raw)
			twice := Panel(once)
			require.Equal(t, once, twice)
		})
	}
}

func TestPanelEnumSubstitution(t *testing.T) {
	var raw entities.Panel
	require.NoError(t, json.Unmarshal([]byte(`{
		"mode": "voice",
		"form": {"fields": [{"label": "Body", "type": "essay"}, {"label": "Link", "type": "url"}]},
		"rules": {"policy": "managers"}
	}`), &raw))

	p := Panel(raw)
	require.Equal(t, entities.PanelModeChannel, p.Mode)
	require.Equal(t, entities.FieldTypeParagraph, p.Form.Fields[0].Type)
	require.Equal(t, entities.FieldTypeURL, p.Form.Fields[1].Type)
	require.Equal(t, entities.RulesPolicyStaffOnly, p.Rules.Policy)
}

func TestPanelZeroLimitsAreValid(t *testing.T) {
	var raw entities.Panel
	require.NoError(t, json.Unmarshal([]byte(`{"limits":{"max_open_per_user":0,"cooldown_minutes":0}}`), &raw))

	p := Panel(raw)
	require.Equal(t, 0, *p.Limits.MaxOpenPerUser)
	require.Equal(t, 0, *p.Limits.CooldownMinutes)
}

func TestPanelPassThrough(t *testing.T) {
	var raw entities.Panel
	require.NoError(t, json.Unmarshal([]byte(`{
		"panel_name": "support desk",
		"enabled": false,
		"mode": "thread",
		"name_template": "help-{user}",
		"deploy": {"channel_id": "111", "message_id": "222"},
		"rules": {"body": "keep it short"}
	}`), &raw))

	p := Panel(raw)
	require.Equal(t, "support desk", p.PanelName)
	require.False(t, *p.Enabled)
	require.Equal(t, entities.PanelModeThread, p.Mode)
	require.Equal(t, "help-{user}", p.NameTemplate)
	require.Equal(t, "111", p.Deploy.ChannelID)
	require.Equal(t, "222", p.Deploy.MessageID)
	require.Equal(t, "keep it short", p.Rules.Body)
}

func TestConfig(t *testing.T) {
	cfg := new(entities.GuildConfig)
	Config(cfg)
	require.NotNil(t, cfg.Ticket.Panels)
	require.Empty(t, cfg.Ticket.Panels)

	cfg.Ticket.Panels = append(cfg.Ticket.Panels, entities.Panel{})
	Config(cfg)
	require.Equal(t, "panel", cfg.Ticket.Panels[0].PanelName)
}
