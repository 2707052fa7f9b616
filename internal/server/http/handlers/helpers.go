package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/server/http/dto"
	"github.com/andrevlins/pedidoflow/internal/server/http/middleware"
	"github.com/andrevlins/pedidoflow/internal/usecase"
)

// CurrentActor extracts the authenticated user from context as an actor.
func CurrentActor(c *gin.Context) usecase.Actor {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return usecase.Actor{}
	}
	user, _ := val.(*model.User)
	if user == nil {
		return usecase.Actor{}
	}
	return usecase.Actor{UserID: user.ID, Name: user.Name, Role: user.Role}
}

func toOrderResponse(order *model.Order, viewer usecase.Actor) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          order.ID,
		PublicID:    order.PublicID.String(),
		Number:      order.Number,
		ClientName:  order.ClientName,
		SellerName:  order.SellerName,
		Status:      string(order.Status),
		StatusLabel: order.Status.Label(),
		StatusColor: order.Status.Color(),
		Subtotal:    order.Subtotal,
		Taxes:       order.Taxes,
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,

		PaymentStatus:      order.PaymentStatus,
		RejectionReason:    order.RejectionReason,
		ReceiptURL:         order.ReceiptURL,
		ProductionStarted:  order.ProductionStartedAt,
		ProductionFinished: order.ProductionFinishedAt,
		ReleasedAt:         order.ReleasedAt,
		ReleasedBy:         order.ReleasedBy,
		QRCode:             order.QRCode,
	}
	for _, target := range usecase.AllowedTargets(viewer.Role, order.Status) {
		resp.AllowedTransitions = append(resp.AllowedTransitions, string(target))
	}
	return resp
}

func toOrderDetailResponse(detail *usecase.OrderDetail, viewer usecase.Actor) dto.OrderDetailResponse {
	resp := dto.OrderDetailResponse{
		OrderResponse: toOrderResponse(detail.Order, viewer),
		Items:         make([]dto.OrderItemResponse, 0, len(detail.Order.Items)),
		Pipeline:      usecase.BuildPipeline(detail.Order),
		Timeline:      usecase.BuildTimeline(detail.History),
	}
	for _, item := range detail.Order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			Product:   item.Product,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Total:     item.Total,
		})
	}
	return resp
}

func toPublicOrderResponse(order *model.Order) dto.PublicOrderResponse {
	return dto.PublicOrderResponse{
		Number:      order.Number,
		ClientName:  order.ClientName,
		Status:      string(order.Status),
		StatusLabel: order.Status.Label(),
		StatusColor: order.Status.Color(),
		Pipeline:    usecase.BuildPipeline(order),
		ReleasedAt:  order.ReleasedAt,
		ReleasedBy:  order.ReleasedBy,
	}
}
