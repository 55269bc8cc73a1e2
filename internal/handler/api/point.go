package api

import (
	"errors"
	"net/http"

	reqdto "futsal-reserve/internal/handler/dto/request"
	resdto "futsal-reserve/internal/handler/dto/response"
	"futsal-reserve/internal/handler/middleware"
	"futsal-reserve/internal/pkg/errs"
	"futsal-reserve/internal/usecase/commands"
	"futsal-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PointHandler struct {
	pointCommands commands.PointCommands
	pointQueries  queries.PointQueries
}

func NewPointHandler(pointCommands commands.PointCommands, pointQueries queries.PointQueries) *PointHandler {
	return &PointHandler{
		pointCommands: pointCommands,
		pointQueries:  pointQueries,
	}
}

// @Summary Point balance
// @Tags points
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BalanceResponse
// @Router /points/balance [get]
func (h *PointHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	balance, err := h.pointQueries.Balance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.BalanceResponse{Balance: balance})
}

// @Summary Point ledger history
// @Tags points
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LedgerHistoryResponse
// @Router /points/history [get]
func (h *PointHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	entries, err := h.pointQueries.History(c.Request.Context(), userID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.LedgerHistoryResponse{Entries: entries})
}

// @Summary Charge points
// @Description Credit purchased points to own balance
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ChargePointsRequest true "Charge request"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 400 {object} map[string]string
// @Router /points/charge [post]
func (h *PointHandler) Charge(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ChargePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	balance, err := h.pointCommands.Charge(c.Request.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid charge amount",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.BalanceResponse{Balance: balance})
}

// @Summary Adjust a user's points
// @Description Admin correction with either sign
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AdjustPointsRequest true "Adjust request"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /points/adjust [post]
func (h *PointHandler) Adjust(c *gin.Context) {
	var req reqdto.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	balance, err := h.pointCommands.Adjust(c.Request.Context(), req.UserID, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Adjustment would make the balance negative",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid adjustment",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.BalanceResponse{Balance: balance})
}
