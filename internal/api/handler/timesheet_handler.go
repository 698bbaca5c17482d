package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timetrack/timesheet-system/internal/api/metrics"
	"github.com/timetrack/timesheet-system/internal/core/ports"
)

// TimesheetHandler handles HTTP requests for timesheet operations.
type TimesheetHandler struct {
	service ports.TimesheetService
}

func NewTimesheetHandler(service ports.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{service: service}
}

// Create logs a new entry owned by the caller.
//
// @Summary      Create a timesheet entry
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTimesheetRequest  true  "Entry details"
// @Success      201   {object}  domain.Timesheet
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /timesheets [post]
func (h *TimesheetHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTimesheetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// The validator already guarantees the layout.
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must match format 2006-01-02")
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateTimesheetInput{
		Identity:    id,
		Date:        date,
		TaskName:    req.TaskName,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.EntriesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// List returns the caller's entries, or everyone's (with owner name and
// email) when the caller is an admin.
//
// @Summary      List timesheet entries
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Timesheet
// @Failure      401  {object}  errorResponse
// @Router       /timesheets [get]
func (h *TimesheetHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sheets, err := h.service.List(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sheets)
}

// SetStatus applies an admin approve/reject decision to one entry.
//
// @Summary      Update the status of a timesheet entry
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Timesheet id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Timesheet
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /timesheets/{id} [put]
func (h *TimesheetHandler) SetStatus(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.service.SetStatus(c.Request().Context(), ports.SetStatusInput{
		Identity:    id,
		TimesheetID: c.Param("id"),
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	metrics.DecisionsTotal.WithLabelValues(string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}
