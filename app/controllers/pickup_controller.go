package controllers

import (
	"net/http"

	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/bind"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/middleware"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

type PickupController struct {
	pickups *services.PickupService
}

func NewPickupController(pickups *services.PickupService) *PickupController {
	return &PickupController{pickups: pickups}
}

// Create handles POST /api/pickups/create, the sell wizard's single
// terminal submission.
func (c *PickupController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.PickupInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pickup, err := c.pickups.Create(middleware.UserIDFromCtx(r.Context()), in)
	if err != nil {
		fail(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("pickup requested",
		"pickup_id", pickup.ID, "material_id", pickup.MaterialID, "quantity", pickup.Quantity)
	response.Created(w, pickup)
}

// Mine handles GET /api/pickups/mine, the seller's own requests.
func (c *PickupController) Mine(w http.ResponseWriter, r *http.Request) {
	pickups, err := c.pickups.ForUser(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		fail(w, err)
		return
	}
	response.List(w, pickups, len(pickups))
}

// Index handles GET /api/pickups for the dashboard. ?status= filters.
func (c *PickupController) Index(w http.ResponseWriter, r *http.Request) {
	pickups, err := c.pickups.List(r.URL.Query().Get("status"))
	if err != nil {
		fail(w, err)
		return
	}
	response.List(w, pickups, len(pickups))
}

// Show handles GET /api/pickups/{id}.
func (c *PickupController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Pickup request not found")
		return
	}

	pickup, err := c.pickups.Get(id)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, pickup)
}

// Accept handles PUT /api/pickups/{id}/accept. The body carries the
// optional collection plan {scheduledTime, driverName} and may be
// omitted entirely.
func (c *PickupController) Accept(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Pickup request not found")
		return
	}

	var in services.AcceptInput
	if r.ContentLength > 0 {
		if errs, err := bind.JSON(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		} else if errs != nil {
			response.ValidationError(w, errs)
			return
		}
	}

	pickup, err := c.pickups.Accept(id, in)
	if err != nil {
		fail(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("pickup accepted",
		"pickup_id", pickup.ID, "scheduled_time", pickup.ScheduledTime, "driver", pickup.DriverName)
	response.Success(w, pickup)
}

// Reject handles PUT /api/pickups/{id}/reject with a mandatory reason.
func (c *PickupController) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Pickup request not found")
		return
	}

	var in struct {
		Reason string `json:"reason" validate:"required,min=3,max=2000"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pickup, err := c.pickups.Reject(id, in.Reason)
	if err != nil {
		fail(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("pickup rejected", "pickup_id", pickup.ID)
	response.Success(w, pickup)
}

// Complete handles PUT /api/pickups/{id}/complete.
func (c *PickupController) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Pickup request not found")
		return
	}

	pickup, err := c.pickups.Complete(id)
	if err != nil {
		fail(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("pickup completed", "pickup_id", pickup.ID)
	response.Success(w, pickup)
}
