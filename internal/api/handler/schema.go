package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the flash-style success envelope. Redirect carries the
// page the client should navigate to next.
type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// --- Auth ---

// Requests carry both form and json tags: the browser flow posts form data,
// API clients post JSON, and the Echo binder handles either.
type registerRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	FullName string `form:"fullname" json:"fullname"`
	Email    string `form:"email"    json:"email"    validate:"omitempty,email"`
	Phone    string `form:"phone"    json:"phone"`
	DOB      string `form:"dob"      json:"dob"`
	Address  string `form:"address"  json:"address"`
}

// formDescriptor describes a form-style endpoint for GET requests, the JSON
// counterpart of serving the HTML form page.
type formDescriptor struct {
	Action   string   `json:"action"`
	Method   string   `json:"method"`
	Fields   []string `json:"fields"`
	Required []string `json:"required"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Redirect string `json:"redirect"`
}

// --- Dashboard / profile ---

type dashboardResponse struct {
	Username string `json:"username"`
	Reports  int    `json:"reports"`
}

// --- Classification ---

type classifyResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Image      string  `json:"image"`
	Warning    string  `json:"warning,omitempty"`
}

// uploadFormResponse describes the upload contract for GET /upload_img.
type uploadFormResponse struct {
	Field   string   `json:"field"`
	Formats []string `json:"formats"`
	MaxMB   int64    `json:"max_mb"`
}

// --- Reports ---

type reportItem struct {
	Image      string    `json:"image"`
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

type pastReportsResponse struct {
	Username string       `json:"username"`
	Reports  []reportItem `json:"reports"`
}

// --- Contact ---

type contactRequest struct {
	Name    string `form:"name"    json:"name"    validate:"required"`
	Email   string `form:"email"   json:"email"   validate:"required,email"`
	Message string `form:"message" json:"message" validate:"required"`
}
