package report

import (
	"fmt"
	"net/http"

	"supplyhr/internal/shared/apperror"
	"supplyhr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AttendanceReport(c *gin.Context) {
	companyID := c.GetString("company_id")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if startDate == "" || endDate == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date and end_date are required", nil)
		return
	}

	data, err := h.service.BuildAttendanceWorkbook(c.Request.Context(), companyID, startDate, endDate)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", startDate, endDate)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
