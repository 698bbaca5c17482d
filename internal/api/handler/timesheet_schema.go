package handler

// dateLayout is the calendar-date format accepted for timesheet entries.
const dateLayout = "2006-01-02"

type createTimesheetRequest struct {
	Date        string  `json:"date"        validate:"required,datetime=2006-01-02"`
	TaskName    string  `json:"task_name"   validate:"required"`
	Hours       float64 `json:"hours"       validate:"required,gt=0"`
	Description string  `json:"description"`
}

type updateStatusRequest struct {
	// Membership in the status enum is checked by the workflow, not here,
	// so an out-of-set value maps to 422 rather than a generic 400.
	Status string `json:"status" validate:"required"`
}
