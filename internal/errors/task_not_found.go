package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "Task not found or not authorized",
	StatusCode: http.StatusNotFound,
}

var ErrNoAttachment = &Exception{
	Kind:       KindNotFound,
	Message:    "No file attached to this task",
	StatusCode: http.StatusNotFound,
}

// ErrAttachmentMissing means the task references a blob that storage no
// longer has.
var ErrAttachmentMissing = &Exception{
	Kind:       KindNotFound,
	Message:    "File not found on server",
	StatusCode: http.StatusNotFound,
}

// ErrToggleTaskNotFound is ErrTaskNotFound as the completion toggle reports
// it to the browser client.
var ErrToggleTaskNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "Task not found or access denied",
	StatusCode: http.StatusNotFound,
}
