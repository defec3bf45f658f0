package controllers

import (
	"net/http"

	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/bind"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/middleware"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Place handles POST /api/orders/place, the shop checkout.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	var in services.PlaceOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(in.Items) == 0 {
		response.ValidationError(w, map[string]string{"items": "The items field is required."})
		return
	}

	order, err := c.orders.Place(middleware.UserIDFromCtx(r.Context()), in)
	if err != nil {
		fail(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order placed", "order_id", order.ID, "total", order.Total)
	response.Created(w, order)
}

// Mine handles GET /api/orders/mine, the customer's own orders.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.ForUser(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		fail(w, err)
		return
	}
	response.List(w, orders, len(orders))
}

// Index handles GET /api/orders for the dashboard. ?status= filters.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.List(r.URL.Query().Get("status"))
	if err != nil {
		fail(w, err)
		return
	}
	response.List(w, orders, len(orders))
}

// Show handles GET /api/orders/{id}.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Order not found")
		return
	}

	order, err := c.orders.Get(id)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, order)
}

// UpdateStatus handles PUT /api/orders/{id}/status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Order not found")
		return
	}

	var in services.UpdateOrderStatusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(id, in.Status)
	if err != nil {
		fail(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order status updated", "order_id", order.ID, "status", order.Status)
	response.Success(w, order)
}
