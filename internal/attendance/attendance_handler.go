package attendance

import (
	"net/http"
	"time"

	attendanceerrors "campus-hr/internal/attendance/errors"
	"campus-hr/internal/shared/apperror"
	"campus-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	if req.PersonID == "" {
		req.PersonID = c.GetString("person_id")
	}

	resp, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	if req.PersonID == "" {
		req.PersonID = c.GetString("person_id")
	}

	resp, err := h.service.CheckOut(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ResolveDay(c *gin.Context) {
	date, err := parseDateQuery(c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resolved, err := h.service.ResolveDay(c.Request.Context(), c.Param("personId"), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapResolvedList(resolved), nil)
}

func (h *Handler) ResolveRange(c *gin.Context) {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resolved, err := h.service.ResolveRange(c.Request.Context(), c.Param("personId"), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapResolvedList(resolved), nil)
}

func (h *Handler) GetEvents(c *gin.Context) {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetEvents(c.Request.Context(), c.Param("personId"), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func parseDateQuery(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapResolvedList(resolved []Resolved) []ResolvedResponse {
	out := make([]ResolvedResponse, len(resolved))
	for i, r := range resolved {
		out[i] = ResolvedResponse{
			PersonID:       r.PersonID.String(),
			Date:           r.Date.Format("2006-01-02"),
			Status:         r.Status,
			HoursWorked:    r.HoursWorked,
			MinutesLate:    r.MinutesLate,
			IsOvertimeSlot: r.IsOvertimeSlot,
		}
		if r.ScheduleEntryID != nil {
			v := r.ScheduleEntryID.String()
			out[i].ScheduleEntryID = &v
		}
	}
	return out
}
