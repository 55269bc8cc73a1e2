package api

import (
	"errors"
	"net/http"
	"time"

	resdto "futsal-reserve/internal/handler/dto/response"
	"futsal-reserve/internal/pkg/errs"
	"futsal-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultSlotWindow = 7 * 24 * time.Hour

type GroundHandler struct {
	groundQueries      queries.GroundQueries
	reservationQueries queries.ReservationQueries
}

func NewGroundHandler(groundQueries queries.GroundQueries, reservationQueries queries.ReservationQueries) *GroundHandler {
	return &GroundHandler{
		groundQueries:      groundQueries,
		reservationQueries: reservationQueries,
	}
}

// @Summary List grounds
// @Tags grounds
// @Produce json
// @Success 200 {array} queries.GroundView
// @Router /grounds [get]
func (h *GroundHandler) ListGrounds(c *gin.Context) {
	grounds, err := h.groundQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, grounds)
}

// @Summary Get ground
// @Tags grounds
// @Produce json
// @Param id path string true "Ground ID"
// @Success 200 {object} queries.GroundView
// @Failure 404 {object} map[string]string
// @Router /grounds/{id} [get]
func (h *GroundHandler) GetGround(c *gin.Context) {
	groundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ground ID",
		})
		return
	}

	view, err := h.groundQueries.GetByID(c.Request.Context(), groundID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrGroundNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Ground not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Occupied slots of a ground
// @Description Confirmed reservations overlapping the requested window
// @Tags grounds
// @Produce json
// @Param id path string true "Ground ID"
// @Param from query string false "Window start (RFC3339), default now"
// @Param to query string false "Window end (RFC3339), default from+7d"
// @Success 200 {object} resdto.OccupiedSlotsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /grounds/{id}/slots [get]
func (h *GroundHandler) GetOccupiedSlots(c *gin.Context) {
	groundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ground ID",
		})
		return
	}

	// 404 before listing slots so an unknown ground is not an empty list
	if _, err := h.groundQueries.GetByID(c.Request.Context(), groundID); err != nil {
		switch {
		case errors.Is(err, errs.ErrGroundNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Ground not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	from, to, err := parseSlotWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	slots, err := h.reservationQueries.OccupiedSlots(c.Request.Context(), groundID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.OccupiedSlotsResponse{
		GroundID: groundID.String(),
		Slots:    slots,
	})
}

// @Summary Reservation history of a ground
// @Description Admin-only booking history, newest slot first
// @Tags grounds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ground ID"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /grounds/{id}/reservations [get]
func (h *GroundHandler) GetGroundReservations(c *gin.Context) {
	groundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ground ID",
		})
		return
	}

	if _, err := h.groundQueries.GetByID(c.Request.Context(), groundID); err != nil {
		switch {
		case errors.Is(err, errs.ErrGroundNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Ground not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	views, err := h.reservationQueries.ListByGround(c.Request.Context(), groundID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": views})
}

func parseSlotWindow(c *gin.Context) (time.Time, time.Time, error) {
	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' timestamp")
		}
		from = parsed
	}

	to := from.Add(defaultSlotWindow)
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' timestamp")
		}
		to = parsed
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.New("'to' must be after 'from'")
	}
	return from, to, nil
}
