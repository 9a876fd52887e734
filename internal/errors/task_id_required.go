package errors

var (
	ErrTaskIDRequired   = InvalidInput("task id is required")
	ErrTaskNameRequired = InvalidInput("Task name is required")
	ErrInvalidDueDate   = InvalidInput("Due date must be a calendar date (YYYY-MM-DD)")
	ErrInvalidJSON      = InvalidInput("invalid JSON payload")
	ErrInvalidForm      = InvalidInput("invalid form payload")
)
