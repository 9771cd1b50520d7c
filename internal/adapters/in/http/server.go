// Package http exposes the order and delivery surface over REST. Handlers
// translate payloads into commands and queries; all business rules live in
// the application layer and below.
package http

import (
	"errors"
	"net/http"

	"mealdash/internal/core/application/usecases/commands"
	"mealdash/internal/core/application/usecases/queries"
	"mealdash/internal/core/domain/model/cart"
	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
	"mealdash/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	checkoutHandler              commands.CheckoutCommandHandler
	changeOrderStatusHandler     commands.ChangeOrderStatusCommandHandler
	acceptDeliveryHandler        commands.AcceptDeliveryCommandHandler
	updateDeliveryStatusHandler  commands.UpdateDeliveryStatusCommandHandler
	reportCourierLocationHandler commands.ReportCourierLocationCommandHandler

	// Query handlers
	getOrderHandler               queries.GetOrderQueryHandler
	getOrdersByStatusHandler      queries.GetOrdersByStatusQueryHandler
	getDeliveryHandler            queries.GetDeliveryQueryHandler
	getAllDeliveriesHandler       queries.GetAllDeliveriesQueryHandler
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	reportCourierLocationHandler commands.ReportCourierLocationCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getAllDeliveriesHandler queries.GetAllDeliveriesQueryHandler,
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
) *Server {
	return &Server{
		checkoutHandler:               checkoutHandler,
		changeOrderStatusHandler:      changeOrderStatusHandler,
		acceptDeliveryHandler:         acceptDeliveryHandler,
		updateDeliveryStatusHandler:   updateDeliveryStatusHandler,
		reportCourierLocationHandler:  reportCourierLocationHandler,
		getOrderHandler:               getOrderHandler,
		getOrdersByStatusHandler:      getOrdersByStatusHandler,
		getDeliveryHandler:            getDeliveryHandler,
		getAllDeliveriesHandler:       getAllDeliveriesHandler,
		getAvailableDeliveriesHandler: getAvailableDeliveriesHandler,
	}
}

// RegisterRoutes attaches all handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders", s.Checkout)
	e.GET("/orders/:id", s.GetOrder)
	e.GET("/orders/:id/delivery", s.GetOrderDelivery)
	e.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	e.GET("/orders/status/:status", s.GetOrdersByStatus)

	e.GET("/deliveries/all", s.GetAllDeliveries)
	e.GET("/deliveries/available", s.GetAvailableDeliveries)
	e.GET("/deliveries/:id", s.GetDelivery)
	e.PATCH("/deliveries/:id/assign", s.AssignDelivery)
	e.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)
	e.PATCH("/deliveries/:id/location", s.ReportCourierLocation)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Checkout handles POST /orders - turns the submitted cart into a placed
// order. Charges are computed here on the server, never taken from the
// client.
func (s *Server) Checkout(ctx echo.Context) error {
	var payload CheckoutPayload
	if err := ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(payload.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}
	restaurantID, err := kernel.UUIDFromString(payload.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	pickupAddress, err := kernel.NewAddress(payload.PickupAddress)
	if err != nil {
		return badRequest(ctx, "Invalid pickup address: "+err.Error())
	}
	deliveryAddress, err := kernel.NewAddress(payload.DeliveryAddress)
	if err != nil {
		return badRequest(ctx, "Invalid delivery address: "+err.Error())
	}

	snapshot, err := buildSnapshot(restaurantID, payload.RestaurantName, payload.Items)
	if err != nil {
		return badRequest(ctx, "Invalid cart: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, customerID, snapshot, pickupAddress, deliveryAddress)
	if err != nil {
		return badRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	if err = s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedPayload{OrderID: orderID.String()})
}

// GetOrder handles GET /orders/:id - retrieves one order in full.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderPayloadFromResponse(resp))
}

// GetOrderDelivery handles GET /orders/:id/delivery - retrieves the delivery
// covering the order.
func (s *Server) GetOrderDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetDeliveryByOrderIDQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryPayloadFromResponse(resp))
}

// ChangeOrderStatus handles PATCH /orders/:id/status - moves the order to
// the requested status and returns the updated order. Illegal transitions
// come back as 422.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var payload ChangeStatusPayload
	if err = ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(payload.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderPayloadFromResponse(resp))
}

// GetOrdersByStatus handles GET /orders/status/:status - lists orders in the
// given status, newest first.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.Param("status"))
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	orders, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderSummaryPayload, 0, len(orders))
	for _, row := range orders {
		response = append(response, OrderSummaryPayload{
			ID:                    row.ID.String(),
			CustomerID:            row.CustomerID.String(),
			RestaurantName:        row.RestaurantName,
			Status:                row.Status,
			TotalCents:            row.TotalCents,
			CreatedAt:             row.CreatedAt,
			EstimatedDeliveryTime: row.EstimatedDeliveryTime,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAllDeliveries handles GET /deliveries/all - the operational dashboard
// listing.
func (s *Server) GetAllDeliveries(ctx echo.Context) error {
	deliveries, err := s.getAllDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAllDeliveriesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]DeliveryPayload, 0, len(deliveries))
	for _, row := range deliveries {
		response = append(response, deliveryPayloadFromResponse(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAvailableDeliveries handles GET /deliveries/available - the courier's
// feed of open offers, oldest first.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	offers, err := s.getAvailableDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableDeliveriesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AvailableDeliveryPayload, 0, len(offers))
	for _, offer := range offers {
		response = append(response, AvailableDeliveryPayload{
			DeliveryID:      offer.DeliveryID.String(),
			OrderID:         offer.OrderID.String(),
			RestaurantName:  offer.RestaurantName,
			PickupAddress:   offer.PickupAddress,
			DeliveryAddress: offer.DeliveryAddress,
			OrderTotalCents: offer.OrderTotalCents,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDelivery handles GET /deliveries/:id - retrieves one delivery.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryPayloadFromResponse(resp))
}

// AssignDelivery handles PATCH /deliveries/:id/assign - a courier's claim on
// a pending delivery, returning the assigned delivery on success. A lost
// race comes back as 409; the courier should move on to the next offer.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	var payload AssignDeliveryPayload
	if err = ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(payload.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier ID: "+err.Error())
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, courierID, payload.CourierName, payload.CourierPhone)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err = s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}
	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryPayloadFromResponse(resp))
}

// UpdateDeliveryStatus handles PATCH /deliveries/:id/status - the courier's
// progress report on an assigned delivery.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	var payload ChangeStatusPayload
	if err = ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := delivery.StatusFromString(payload.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportCourierLocation handles PATCH /deliveries/:id/location - a position
// update from the courier working the delivery.
func (s *Server) ReportCourierLocation(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery ID: "+err.Error())
	}

	var payload LocationPayload
	if err = ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportCourierLocationCommand(deliveryID, payload.Lat, payload.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	if err = s.reportCourierLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// buildSnapshot replays the submitted items through a cart so the single
// restaurant rule and quantity bounds apply to API checkouts too.
func buildSnapshot(
	restaurantID kernel.UUID,
	restaurantName string,
	items []CheckoutItemPayload,
) (cart.Snapshot, error) {
	sessionCart := cart.NewCart()
	for _, itemPayload := range items {
		menuItemID, err := kernel.UUIDFromString(itemPayload.MenuItemID)
		if err != nil {
			return cart.Snapshot{}, err
		}
		unitPrice, err := kernel.NewMoneyFromCents(itemPayload.UnitPriceCents)
		if err != nil {
			return cart.Snapshot{}, err
		}
		item, err := cart.NewItem(menuItemID, itemPayload.Name, unitPrice)
		if err != nil {
			return cart.Snapshot{}, err
		}
		if err = sessionCart.AddLine(restaurantID, restaurantName, item); err != nil {
			return cart.Snapshot{}, err
		}
		if itemPayload.Quantity != 1 {
			if err = sessionCart.UpdateQuantity(menuItemID, itemPayload.Quantity); err != nil {
				return cart.Snapshot{}, err
			}
		}
	}

	return sessionCart.Snapshot()
}

// respondError maps handler errors onto the REST status taxonomy: missing
// objects are 404, lost races 409, illegal lifecycle moves 422, bad input
// 400, everything else 500.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorPayload{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorPayload{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
