package checkin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"musicstudio/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated check-in endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/checkin-code", h.IssueCode)
	rg.POST("/checkin", h.Redeem)
}

type redeemRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *Handler) IssueCode(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	ci, err := h.service.IssueCode(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"booking_id": ci.BookingID,
		"code":       ci.Code,
		"issued_at":  ci.IssuedAt,
	})
}

func (h *Handler) Redeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Check-in code is required")
		return
	}

	b, err := h.service.Redeem(c.Request.Context(), req.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrNotCheckable:
		response.Error(c, http.StatusConflict, "NOT_CHECKABLE", "Booking is not ready for check-in")
	case ErrInvalidCode:
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_CODE", "Check-in code is not valid")
	case ErrCodeUsed:
		response.Error(c, http.StatusConflict, "CODE_USED", "Check-in code was already redeemed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process check-in")
	}
}
