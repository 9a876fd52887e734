package constants

// Audit actions written to the log for every account or task mutation.
const (
	ActionSignUp          = "SIGN_UP"
	ActionLogin           = "LOGIN"
	ActionCreateTask      = "CREATE_TASK"
	ActionEditTask        = "EDIT_TASK"
	ActionDeleteTask      = "DELETE_TASK"
	ActionToggleCompleted = "TOGGLE_COMPLETED"
)
