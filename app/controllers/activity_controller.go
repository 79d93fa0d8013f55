package controllers

import (
	"net/http"

	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/pkg/response"
	"github.com/pehnava/pehnava/pkg/ws"
)

type ActivityController struct {
	activity *services.ActivityService
	hub      *ws.Hub
}

func NewActivityController(activity *services.ActivityService, hub *ws.Hub) *ActivityController {
	return &ActivityController{activity: activity, hub: hub}
}

// Index serves the seller's recent feed entries.
func (c *ActivityController) Index(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	activities, err := c.activity.Recent(r.Context(), seller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, activities)
}

// Feed upgrades to a WebSocket subscribed to the seller's own activity
// channel.
func (c *ActivityController) Feed(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	ws.Upgrade(w, r, c.hub, seller.Hex())
}
