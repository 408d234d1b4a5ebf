package entities

// PanelMode is how a panel opens tickets.
type PanelMode string

const (
	// PanelModeChannel opens tickets as text channels under a category.
	PanelModeChannel PanelMode = "channel"

	// PanelModeThread opens tickets as private threads under a parent channel.
	PanelModeThread PanelMode = "thread"
)

// FieldType is the input type of a form field.
type FieldType string

const (
	// FieldTypeText is a single line text input.
	FieldTypeText FieldType = "text"

	// FieldTypeParagraph is a multi line text input.
	FieldTypeParagraph FieldType = "paragraph"

	// FieldTypeURL is a single line input expected to hold a URL.
	FieldTypeURL FieldType = "url"
)

// RulesPolicy is who the rules message is shown to.
type RulesPolicy string

const (
	// RulesPolicyStaffOnly shows the rules message to staff only.
	RulesPolicyStaffOnly RulesPolicy = "staff_only"

	// RulesPolicyEveryone shows the rules message to everyone in the ticket.
	RulesPolicyEveryone RulesPolicy = "everyone"
)

// Panel is one independently configured ticket intake definition.
//
// Fields whose default is not the Go zero value are pointers so that an
// absent value can be told apart from an explicit false/zero; the
// normalizer resolves every nil pointer to its documented default.
type Panel struct {
	// PanelID is the opaque storage identity of the panel, assigned by the
	// server at create time. The wire format stays positional; this ID is
	// never used for addressing.
	PanelID string `json:"panel_id,omitempty" bson:"panel_id,omitempty"`

	// PanelName is the display label of the panel.
	PanelName string `json:"panel_name" bson:"panel_name"`

	// Enabled is whether the panel accepts new tickets.
	Enabled *bool `json:"enabled" bson:"enabled"`

	// Mode is how the panel opens tickets.
	Mode PanelMode `json:"mode" bson:"mode"`

	// NameTemplate is the ticket name template. Placeholders: {count}, {user}.
	NameTemplate string `json:"name_template" bson:"name_template"`

	// ParentCategoryID is the category created ticket channels are put in.
	ParentCategoryID string `json:"parent_category_id" bson:"parent_category_id"`

	// ThreadParentChannelID is the channel ticket threads are started under.
	ThreadParentChannelID string `json:"thread_parent_channel_id" bson:"thread_parent_channel_id"`

	// Deploy tracks the deployed intake message for the panel.
	Deploy DeployRef `json:"deploy" bson:"deploy"`

	// Permissions are the role permissions for tickets opened by this panel.
	Permissions PanelPermissions `json:"permissions" bson:"permissions"`

	// Limits are the per-user creation limits for this panel.
	Limits PanelLimits `json:"limits" bson:"limits"`

	// Form is the intake form configuration.
	Form PanelForm `json:"form" bson:"form"`

	// Rules is the rules message configuration.
	Rules PanelRules `json:"rules" bson:"rules"`

	// Close is the close policy configuration.
	Close PanelClose `json:"close" bson:"close"`
}

// DeployRef tracks the deployed intake message for a panel.
type DeployRef struct {
	// ChannelID is the operator chosen destination channel.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// MessageID is the ID of the deployed intake message. It is set only by
	// a successful deploy response, never locally, so a redeploy edits the
	// same message instead of creating a duplicate.
	MessageID string `json:"message_id" bson:"message_id"`
}

// PanelPermissions are the role permissions for tickets opened by a panel.
type PanelPermissions struct {
	// StaffRoleIDs are the roles that handle tickets from this panel.
	StaffRoleIDs []string `json:"staff_role_ids" bson:"staff_role_ids"`

	// ViewerRoleIDs are the roles that can view but not manage tickets.
	ViewerRoleIDs []string `json:"viewer_role_ids" bson:"viewer_role_ids"`
}

// PanelLimits are the per-user ticket creation limits for a panel.
type PanelLimits struct {
	// MaxOpenPerUser is the maximum number of tickets a user can have open
	// at once for this panel.
	MaxOpenPerUser *int `json:"max_open_per_user" bson:"max_open_per_user"`

	// CooldownMinutes is the minimum time between ticket creations per user.
	CooldownMinutes *int `json:"cooldown_minutes" bson:"cooldown_minutes"`
}

// PanelForm is the intake form configuration for a panel.
type PanelForm struct {
	// Enabled is whether the intake form is shown on ticket creation.
	Enabled *bool `json:"enabled" bson:"enabled"`

	// Fields is the ordered list of form fields. Order is significant: the
	// fields are rendered top to bottom and index the stored answers.
	Fields []FormField `json:"fields" bson:"fields"`
}

// FormField is one field of a panel intake form. A field has no identity
// beyond its position in the form.
type FormField struct {
	// Label is the label shown above the input.
	Label string `json:"label" bson:"label"`

	// Type is the input type.
	Type FieldType `json:"type" bson:"type"`

	// Required is whether the field must be filled in.
	Required bool `json:"required" bson:"required"`

	// Hint is the placeholder text shown inside the input.
	Hint string `json:"hint" bson:"hint"`
}

// PanelRules is the rules message configuration for a panel.
type PanelRules struct {
	// Enabled is whether the rules message is posted in new tickets.
	Enabled *bool `json:"enabled" bson:"enabled"`

	// Title is the title of the rules message.
	Title string `json:"title" bson:"title"`

	// Body is the body of the rules message. A blank body is replaced with
	// DefaultRulesBody at save time, not at load time.
	Body string `json:"body" bson:"body"`

	// AllowEveryoneMention is whether the rules message may mention everyone.
	AllowEveryoneMention bool `json:"allow_everyone_mention" bson:"allow_everyone_mention"`

	// AllowedRoleIDs are the roles the rules message may mention.
	AllowedRoleIDs []string `json:"allowed_role_ids" bson:"allowed_role_ids"`

	// Policy is who the rules message is shown to.
	Policy RulesPolicy `json:"policy" bson:"policy"`
}

// PanelClose is the close policy configuration for a panel.
type PanelClose struct {
	// ConfirmRequired is whether closing a ticket asks for confirmation.
	ConfirmRequired *bool `json:"confirm_required" bson:"confirm_required"`

	// ClosedCategoryID is the category closed tickets are moved to. If it is
	// empty the ticket channel is deleted on close instead.
	ClosedCategoryID string `json:"closed_category_id" bson:"closed_category_id"`

	// AllowReopen is whether a closed ticket can be reopened.
	AllowReopen *bool `json:"allow_reopen" bson:"allow_reopen"`

	// DeleteAfterDays is how many days after closing the ticket channel is
	// deleted by the cleanup loop.
	DeleteAfterDays *int `json:"delete_after_days" bson:"delete_after_days"`
}
