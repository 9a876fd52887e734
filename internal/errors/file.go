package errors

import "net/http"

var ErrFileTooLarge = &Exception{
	Kind:       KindPayloadTooLarge,
	Message:    "File too large. Maximum size is 10MB.",
	StatusCode: http.StatusRequestEntityTooLarge,
}

var ErrUnsupportedFileType = &Exception{
	Kind:       KindUnsupportedMediaType,
	Message:    "Invalid file type. Only PDF, DOCX, and image files are allowed.",
	StatusCode: http.StatusUnsupportedMediaType,
}

var ErrInternal = &Exception{
	Kind:       KindInternal,
	Message:    "Server error",
	StatusCode: http.StatusInternalServerError,
}
