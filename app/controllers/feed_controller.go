package controllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/pkg/event"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/sse"
	"github.com/ecotrackhq/ecotrack/pkg/ws"
)

// AdminHub is the WebSocket hub behind GET /ws/admin. Dashboard tabs
// connected to it receive pickup and order events as they happen.
var AdminHub = ws.NewHub()

func init() {
	go AdminHub.Run()

	broadcast := func(kind string) event.Handler {
		return func(payload interface{}) {
			msg, err := json.Marshal(map[string]interface{}{
				"event": kind,
				"data":  payload,
			})
			if err != nil {
				return
			}
			AdminHub.Broadcast <- msg
		}
	}

	event.Listen(event.PickupCreated, broadcast("pickup.created"))
	event.Listen(event.PickupAccepted, broadcast("pickup.accepted"))
	event.Listen(event.PickupRejected, broadcast("pickup.rejected"))
	event.Listen(event.PickupCompleted, broadcast("pickup.completed"))
	event.Listen(event.OrderPlaced, broadcast("order.placed"))
	event.Listen(event.OrderUpdated, broadcast("order.updated"))
}

// pickupSubscribers fans PickupCreated events out to open SSE streams.
// event.Listen registrations cannot be removed, so streams register
// here and deregister on disconnect.
var pickupSubscribers = struct {
	sync.Mutex
	chans map[chan models.PickupRequest]struct{}
}{chans: map[chan models.PickupRequest]struct{}{}}

func init() {
	event.Listen(event.PickupCreated, func(payload interface{}) {
		pickup, ok := payload.(models.PickupRequest)
		if !ok {
			return
		}
		pickupSubscribers.Lock()
		defer pickupSubscribers.Unlock()
		for ch := range pickupSubscribers.chans {
			select {
			case ch <- pickup:
			default:
			}
		}
	})
}

func subscribePickups() chan models.PickupRequest {
	ch := make(chan models.PickupRequest, 16)
	pickupSubscribers.Lock()
	pickupSubscribers.chans[ch] = struct{}{}
	pickupSubscribers.Unlock()
	return ch
}

func unsubscribePickups(ch chan models.PickupRequest) {
	pickupSubscribers.Lock()
	delete(pickupSubscribers.chans, ch)
	pickupSubscribers.Unlock()
}

type FeedController struct{}

func NewFeedController() *FeedController {
	return &FeedController{}
}

// AdminSocket handles GET /ws/admin by upgrading to a WebSocket wired
// into AdminHub.
func (c *FeedController) AdminSocket(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, AdminHub)
}

// PickupStream handles GET /api/pickups/stream, a Server-Sent Events
// feed of new pickup requests for dashboards that cannot hold a socket.
func (c *FeedController) PickupStream(w http.ResponseWriter, r *http.Request) {
	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	created := subscribePickups()
	defer unsubscribePickups(created)

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case pickup := <-created:
			if err := stream.Send("pickup", pickup); err != nil {
				logger.WithCtx(r.Context()).Debug("pickup stream closed", "error", err)
				return
			}
		case <-heartbeat.C:
			stream.Comment("keepalive")
		}
	}
}
