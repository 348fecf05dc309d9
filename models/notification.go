package models

// Notification is the toast payload pushed over the notification channel.
// Toasts are delivered live to connected clients and never stored.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Timestamp   string `json:"timestamp"`
}

const (
	SeveritySuccess     = "success"
	SeverityInfo        = "info"
	SeverityDestructive = "destructive"
)
