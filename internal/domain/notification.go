package domain

// Notification is an in-app message created by workflow status changes and
// by scheduled reminder jobs. Delivery to external channels is someone
// else's job; this is only the record that something observable happened.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}
