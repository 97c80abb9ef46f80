package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyHabit is the gin context key holding the habit loaded by RequireHabitAccess.
	ContextKeyHabit = "habit"

	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength = 8

	// DateLayout is the wire format for completion dates.
	DateLayout = "2006-01-02"
)
