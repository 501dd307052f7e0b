package domain

import "time"

// PredictionReport records one completed classification. Reports are
// append-only: created exactly once per successful inference, never updated
// or deleted, and owned by the user who uploaded the image.
type PredictionReport struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	Username   string    `json:"username" bson:"username"`
	Image      string    `json:"image" bson:"image"`
	Prediction string    `json:"prediction" bson:"prediction"`
	Confidence float64   `json:"confidence" bson:"confidence"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
