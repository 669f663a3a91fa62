package dto

// LoginRequest is the login form or JSON body.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse answers JSON login clients. The token itself travels only in
// the httpOnly cookie.
type LoginResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// ErrorResponse is the JSON error body. Error carries the human-readable
// message; Code and Details sit beside it.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
