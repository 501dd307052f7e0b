package domain

import "time"

// Feedback is a contact-form message. Write-only from the application's
// point of view.
type Feedback struct {
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Message   string    `json:"message" bson:"message"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
