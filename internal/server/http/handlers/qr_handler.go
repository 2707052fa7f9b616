package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/server/http/dto"
)

// QRHandler serves the unauthenticated QR tracking page and release action.
type QRHandler struct {
	orders      OrderFacade
	transitions TransitionFacade
}

// NewQRHandler constructs QRHandler.
func NewQRHandler(orders OrderFacade, transitions TransitionFacade) *QRHandler {
	return &QRHandler{orders: orders, transitions: transitions}
}

// Show handles GET /qr/:publicID.
func (h *QRHandler) Show(c *gin.Context) {
	publicID, err := uuid.Parse(c.Param("publicID"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	detail, err := h.orders.OrderByPublicID(c.Request.Context(), publicID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toPublicOrderResponse(detail.Order))
}

// Release handles POST /qr/:publicID/release. The body is optional; a missing
// or empty released_by falls back to the system actor.
func (h *QRHandler) Release(c *gin.Context) {
	publicID, err := uuid.Parse(c.Param("publicID"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.transitions.ReleaseOrder(c.Request.Context(), publicID, req.ReleasedBy)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition),
			errors.Is(err, domainErrors.ErrForbiddenTransition),
			errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toPublicOrderResponse(order))
}
