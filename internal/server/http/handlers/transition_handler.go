package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/server/http/dto"
	"github.com/andrevlins/pedidoflow/internal/usecase"
)

// TransitionHandler applies role-gated status changes.
type TransitionHandler struct {
	facade TransitionFacade
}

// NewTransitionHandler constructs TransitionHandler.
func NewTransitionHandler(facade TransitionFacade) *TransitionHandler {
	return &TransitionHandler{facade: facade}
}

// Apply handles POST /api/orders/:id/transitions.
func (h *TransitionHandler) Apply(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	actor := CurrentActor(c)
	input := usecase.TransitionInput{
		To:              model.Status(req.ToStatus),
		Note:            req.Note,
		ReceiptURL:      req.ReceiptURL,
		RejectionReason: req.RejectionReason,
	}

	order, err := h.facade.ApplyTransition(c.Request.Context(), actor, orderID, input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbiddenTransition):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidTransition),
			errors.Is(err, domainErrors.ErrRejectionReasonRequired):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order, actor))
}
