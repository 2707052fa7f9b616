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

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	input := usecase.CreateOrderInput{
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Taxes:      req.Taxes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, usecase.CreateOrderItem{
			Product:   item.Product,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		})
	}

	actor := CurrentActor(c)
	order, err := h.facade.CreateOrder(c.Request.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbiddenTransition):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidOrder):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order, actor))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	actor := CurrentActor(c)
	status := model.Status(c.Query("status"))

	orders, err := h.facade.Orders(c.Request.Context(), actor, status)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOrder):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i], actor))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	actor := CurrentActor(c)
	detail, err := h.facade.Order(c.Request.Context(), actor, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderDetailResponse(detail, actor))
}
