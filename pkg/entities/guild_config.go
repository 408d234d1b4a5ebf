package entities

// GuildConfig is the full configuration document for a guild. It is the
// unit of persistence: the dashboard always saves and loads the whole
// document, never a partial patch.
type GuildConfig struct {
	// ID is the ID of the guild.
	ID string `json:"id" bson:"id"`

	// Lang is the display language for the guild dashboard.
	Lang string `json:"lang" bson:"lang"`

	// JoinLeave is the join/leave announcement configuration.
	JoinLeave JoinLeaveConfig `json:"jl" bson:"jl"`

	// Rank is the ranking and leaderboard configuration.
	Rank RankConfig `json:"rank" bson:"rank"`

	// Ticket is the ticketing configuration.
	Ticket TicketFeatureConfig `json:"ticket" bson:"ticket"`
}

// TicketFeatureConfig is the ticketing configuration for a guild.
//
// Panels are addressed by their position in the slice. The wire format is
// positional; PanelID exists for storage identity and display only.
type TicketFeatureConfig struct {
	// Panels is the ordered list of ticket panels.
	Panels []Panel `json:"panels" bson:"panels"`
}

// EmbedConfig is a message embed configuration.
type EmbedConfig struct {
	// Title is the title of the embed.
	Title string `json:"title" bson:"title"`

	// Description is the description of the embed.
	Description string `json:"description" bson:"description"`

	// Color is the hex colour of the embed, e.g. "#5865F2".
	Color string `json:"color" bson:"color"`

	// Footer is the footer text of the embed.
	Footer string `json:"footer" bson:"footer"`
}

// JoinLeaveConfig is the join/leave announcement configuration.
type JoinLeaveConfig struct {
	// Enabled is whether join/leave announcements are enabled.
	Enabled bool `json:"enabled" bson:"enabled"`

	// Channels are the announcement channels.
	Channels JoinLeaveChannels `json:"channels" bson:"channels"`

	// JoinEmbed is the embed sent when a member joins.
	JoinEmbed EmbedConfig `json:"join_embed" bson:"join_embed"`

	// LeaveEmbed is the embed sent when a member leaves.
	LeaveEmbed EmbedConfig `json:"leave_embed" bson:"leave_embed"`
}

// JoinLeaveChannels are the channels that join/leave announcements are sent to.
type JoinLeaveChannels struct {
	// Join is the ID of the channel that join announcements are sent to.
	Join string `json:"join" bson:"join"`

	// Leave is the ID of the channel that leave announcements are sent to.
	Leave string `json:"leave" bson:"leave"`
}

// RankConfig is the ranking configuration.
type RankConfig struct {
	// Enabled is whether ranking is enabled.
	Enabled bool `json:"enabled" bson:"enabled"`

	// Embed is the embed used for rank cards.
	Embed EmbedConfig `json:"embed" bson:"embed"`

	// Leaderboard is the deployed leaderboard configuration.
	Leaderboard LeaderboardConfig `json:"leaderboard" bson:"leaderboard"`
}

// LeaderboardConfig is the deployed leaderboard configuration.
type LeaderboardConfig struct {
	// Enabled is whether the leaderboard is enabled.
	Enabled bool `json:"enabled" bson:"enabled"`

	// ChannelID is the ID of the channel that the leaderboard is deployed to.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// IntervalMinutes is how often the deployed leaderboard is refreshed.
	IntervalMinutes int `json:"interval_minutes" bson:"interval_minutes"`

	// MessageID is the ID of the deployed leaderboard message. It is set by a
	// successful deploy, never locally, so a redeploy edits the same message.
	MessageID string `json:"message_id" bson:"message_id"`

	// Mention is whether the leaderboard refresh mentions the listed members.
	Mention bool `json:"mention" bson:"mention"`

	// Show controls which score columns the leaderboard displays.
	Show LeaderboardShow `json:"show" bson:"show"`
}

// LeaderboardShow controls which score columns the leaderboard displays.
type LeaderboardShow struct {
	Text    bool `json:"text" bson:"text"`
	VC      bool `json:"vc" bson:"vc"`
	Overall bool `json:"overall" bson:"overall"`
}
