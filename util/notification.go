package util

// Notification constructs the title and message for a user notification
type Notification struct {
	Title   string
	Message string
}
