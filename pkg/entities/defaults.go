package entities

// Documented defaults for panel configuration. The normalizer substitutes
// these wherever a value is absent or unrecognised; the save path
// substitutes DefaultRulesBody for a blank rules body.
const (
	// DefaultPanelName is the default display label for a panel.
	DefaultPanelName = "panel"

	// DefaultNameTemplate is the default ticket name template.
	DefaultNameTemplate = "ticket-{count}-{user}"

	// DefaultMaxOpenPerUser is the default maximum open tickets per user.
	DefaultMaxOpenPerUser = 5

	// DefaultCooldownMinutes is the default per-user creation cooldown.
	DefaultCooldownMinutes = 30

	// DefaultDeleteAfterDays is the default closed ticket retention.
	DefaultDeleteAfterDays = 14

	// DefaultRulesTitle is the default title of the rules message.
	DefaultRulesTitle = "Rules / Notes"
)

// DefaultRulesBody is the body used when a panel is saved with a blank
// rules body.
const DefaultRulesBody = `Please describe your issue in as much detail as you can.
Do not share personal information in this ticket.
Do not mention everyone or unrelated roles.
Staff will respond as soon as they are available.`
