// controllers/realtime_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT   *services.RealtimeHub
	Logs *services.NutritionLogService
}

func NewRealtimeController(rt *services.RealtimeHub, logs *services.NutritionLogService) *RealtimeController {
	return &RealtimeController{RT: rt, Logs: logs}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// trackerFrame is what the mobile client sends over the tracker socket.
type trackerFrame struct {
	Type    string              `json:"type"` // "query" | "add" | "remove" | "shift"
	Text    string              `json:"text,omitempty"`
	Food    *models.CatalogItem `json:"food,omitempty"`
	Amount  float64             `json:"amount_grams,omitempty"`
	EntryID string              `json:"entry_id,omitempty"`
	Days    int                 `json:"days,omitempty"`
}

// TrackerWS is the live tracker session: the client streams keystrokes and
// log mutations, the server debounces searches, pushes result frames and
// keeps the day's log and totals in sync.
//
// GET /ws/nutrition?date=2024-06-01
func (rc *RealtimeController) TrackerWS(c *gin.Context) {
	uid := c.GetUint("userID")

	date := c.Query("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		date = time.Now().Format(models.DateLayout)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	search := services.NewSearchController(
		services.NewUsdaService(),
		func(items []models.CatalogItem) {
			_ = cl.Send(gin.H{"kind": "search.results", "items": items})
		},
		func(err error) {
			// prior results stay on the client; only the error is surfaced
			_ = cl.Send(gin.H{"kind": "search.error", "error": err.Error()})
		},
	)

	session := services.NewTrackerSession(rc.Logs, uid, date)
	if err := session.Load(context.Background()); err != nil {
		_ = cl.Send(gin.H{"kind": "error", "error": err.Error()})
	}
	_ = cl.Send(gin.H{"kind": "log", "log": session.Log()})

	// keep connections alive through proxies
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Ping(); err != nil {
					return
				}
			}
		}
	}()

	defer func() {
		close(done)
		search.Cancel()
		rc.RT.Unregister(cl)
	}()

	for {
		var frame trackerFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		rc.handleFrame(cl, session, search, frame)
	}
}

func (rc *RealtimeController) handleFrame(cl *services.WSClient, session *services.TrackerSession, search *services.SearchController, frame trackerFrame) {
	ctx := context.Background()

	switch frame.Type {
	case "query":
		search.QueryChanged(frame.Text)

	case "add":
		if frame.Food == nil {
			_ = cl.Send(gin.H{"kind": "error", "error": "food is required"})
			return
		}
		if _, err := session.AddFood(ctx, *frame.Food, frame.Amount); err != nil {
			_ = cl.Send(gin.H{"kind": "error", "error": err.Error()})
			if services.IsValidation(err) {
				return
			}
			// persistence failed but the optimistic state is kept; fall
			// through so the client still sees it
		}
		_ = cl.Send(gin.H{"kind": "log", "log": session.Log()})

	case "remove":
		if err := session.RemoveEntry(ctx, frame.EntryID); err != nil {
			_ = cl.Send(gin.H{"kind": "error", "error": err.Error()})
		}
		_ = cl.Send(gin.H{"kind": "log", "log": session.Log()})

	case "shift":
		if err := session.Shift(ctx, frame.Days); err != nil {
			_ = cl.Send(gin.H{"kind": "error", "error": err.Error()})
		}
		_ = cl.Send(gin.H{"kind": "log", "log": session.Log()})

	default:
		_ = cl.Send(gin.H{"kind": "error", "error": "unknown frame type"})
	}
}
