package availability

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"musicstudio/internal/domain"
	"musicstudio/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetSlots)
	rg.GET("/availability/grid", h.GetGrid)
	rg.GET("/instructors", h.ListInstructors)
	rg.GET("/instructors/:id/availability", h.GetInstructorAvailability)
}

func (h *Handler) ListInstructors(c *gin.Context) {
	instructors, err := h.service.ListInstructors(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"instructors": instructors})
}

func (h *Handler) GetSlots(c *gin.Context) {
	service := domain.ServiceType(c.Query("service"))
	date := c.Query("date")
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid duration")
		return
	}

	res, err := h.service.GetAvailableSlots(c.Request.Context(), service, date, duration)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetGrid(c *gin.Context) {
	service := domain.ServiceType(c.Query("service"))
	date := c.Query("date")
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid duration")
		return
	}

	res, err := h.service.GetAvailabilityGrid(c.Request.Context(), service, date, duration)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetInstructorAvailability(c *gin.Context) {
	instructorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid instructor ID")
		return
	}
	date := c.Query("date")
	start, err := strconv.Atoi(c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start minutes")
		return
	}
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid duration")
		return
	}

	res, err := h.service.CheckInstructor(c.Request.Context(), instructorID, date, start, duration)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date or duration")
	case ErrUnknownService:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown service type")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
	}
}
