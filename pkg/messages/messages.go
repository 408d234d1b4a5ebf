package messages

const (
	// ErrUserErrorProcessing is the message sent to the user when processing their action fails.
	ErrUserErrorProcessing = "Something went wrong processing your request. Please try again later."

	// ErrTicketLimitReached is the message sent when the user has too many open tickets for a panel.
	ErrTicketLimitReached = "You have reached the maximum number of open tickets for this panel."

	// ErrTicketCooldown is the message sent when the user is still in the panel cooldown window.
	ErrTicketCooldown = "You are creating tickets too quickly. Please wait a while before opening another one."

	// TicketCreated is the message sent when a ticket has been created.
	TicketCreated = "Your ticket has been created."

	// TicketClosed is the message sent when a ticket has been closed.
	TicketClosed = "This ticket has been closed."
)
