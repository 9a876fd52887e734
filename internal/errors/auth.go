package errors

import "net/http"

var (
	ErrEmailRequired    = InvalidInput("Email and password are required")
	ErrInvalidEmail     = InvalidInput("Please enter a valid email address")
	ErrCyrillicPassword = InvalidInput("Password must not contain Cyrillic (Russian/Ukrainian) letters.")
	ErrPasswordTooLong  = InvalidInput("Password is too long")
)

var ErrEmailTaken = &Exception{
	Kind:       KindConflict,
	Message:    "User with this email is already registered",
	StatusCode: http.StatusBadRequest,
}

// ErrAccountNotFound and ErrWrongPassword are classified differently but
// both render as 401.
var ErrAccountNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "User with this email does not exist",
	StatusCode: http.StatusUnauthorized,
}

var ErrWrongPassword = &Exception{
	Kind:       KindUnauthorized,
	Message:    "Incorrect password",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidSession = &Exception{
	Kind:       KindUnauthorized,
	Message:    "Authentication required",
	StatusCode: http.StatusUnauthorized,
}
