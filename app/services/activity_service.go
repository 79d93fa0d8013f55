package services

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/logger"
	"github.com/pehnava/pehnava/pkg/ws"
)

// recentActivityLimit caps how many entries the dashboard feed shows.
const recentActivityLimit = 15

// ActivityService keeps the per-seller dashboard activity feed: a short
// log in Mongo plus a live push over WebSocket to any connected
// dashboard.
type ActivityService struct {
	activities ActivityStore
	hub        *ws.Hub
}

// NewActivityService wires the store and the feed hub. hub may be nil;
// entries are then stored without a live push.
func NewActivityService(activities ActivityStore, hub *ws.Hub) *ActivityService {
	return &ActivityService{activities: activities, hub: hub}
}

// Log appends an entry to the owner's feed and pushes it to their live
// dashboard channel. The push is best effort; a failed broadcast never
// fails the caller.
func (s *ActivityService) Log(ctx context.Context, owner primitive.ObjectID, label, icon, color string) error {
	activity := models.Activity{
		Owner: owner,
		Label: label,
		Icon:  icon,
		Color: color,
	}
	if err := s.activities.Insert(ctx, &activity); err != nil {
		return err
	}

	if s.hub != nil {
		payload, err := json.Marshal(activity)
		if err != nil {
			logger.Warn("activity: marshal for broadcast", "error", err)
			return nil
		}
		s.hub.Publish(owner.Hex(), payload)
	}
	return nil
}

// Recent returns the owner's newest feed entries.
func (s *ActivityService) Recent(ctx context.Context, owner primitive.ObjectID) ([]models.Activity, error) {
	return s.activities.RecentByOwner(ctx, owner, recentActivityLimit)
}
