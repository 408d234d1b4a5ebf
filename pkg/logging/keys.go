package logging

const (
	// KeyError is the key used for errors.
	KeyError = "err"

	// KeyDal is the key used for the data access layer name.
	KeyDal = "dal"

	// KeyGuild is the key used for the guild ID.
	KeyGuild = "guild_id"

	// KeyEndpoint is the key used for the endpoint name.
	KeyEndpoint = "endpoint"

	// KeyPanel is the key used for the panel index.
	KeyPanel = "panel_index"
)
