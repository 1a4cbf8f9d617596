package handlers

import (
	"context"
	"fieldops/internal/adapter/realtime"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase"
	"fieldops/internal/usecase/interfaces"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait    = 10 * time.Second
	streamPongWait     = 60 * time.Second
	streamPingInterval = 25 * time.Second
)

// JobSubscriber registers a push stream for a team.
type JobSubscriber interface {
	Subscribe(teamID string) *realtime.Subscription
}

// JobStreamHandler serves the websocket push channel of a team's job list.
//
// The first frame is the current list; every later frame replaces it whole.

type JobStreamHandler struct {
	auth     usecase.ITeamUseCase
	jobs     interfaces.IWorkOrderRepository
	hub      JobSubscriber
	upgrader websocket.Upgrader
}

func NewJobStreamHandler(auth usecase.ITeamUseCase, jobs interfaces.IWorkOrderRepository, hub JobSubscriber) *JobStreamHandler {
	return &JobStreamHandler{
		auth: auth,
		jobs: jobs,
		hub:  hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // consoles are not browsers
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *JobStreamHandler) StreamJobs(c *gin.Context) {
	teamID := c.Param("team_id")
	// Query strings end up in access logs; the credential is header-only.
	password := c.GetHeader(HeaderTeamPassword)

	if h.auth == nil || h.jobs == nil || h.hub == nil {
		writeError(c, mapWorkOrderError(usecase.ErrJobRepoNotConfigured))
		return
	}
	team, err := h.auth.Authorize(c.Request.Context(), teamID, password)
	if err != nil {
		log.Printf("[push][handler] authorize failed team_id=%s err=%v", teamID, err)
		writeError(c, mapAuthError(err))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[push][handler] upgrade failed team_id=%s err=%v", team.ID, err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(team.ID)
	defer sub.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go h.readPump(conn, cancel)

	jobs, err := h.jobs.ListByTeamID(ctx, team.ID)
	if err != nil {
		log.Printf("[push][handler] initial list failed team_id=%s err=%v", team.ID, err)
		return
	}
	usecase.SortJobs(jobs)
	if err := writeFrame(conn, realtime.JobsMessage{Type: realtime.MessageTypeUpdate, Jobs: jobs}); err != nil {
		return
	}
	log.Printf("[push][handler] stream open team_id=%s jobs=%d", team.ID, len(jobs))

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[push][handler] stream closed team_id=%s", team.ID)
			return
		case msg, ok := <-sub.C():
			if !ok {
				return
			}
			if err := writeFrame(conn, msg); err != nil {
				log.Printf("[push][handler] write failed team_id=%s err=%v", team.ID, err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
func (h *JobStreamHandler) readPump(conn *websocket.Conn, done context.CancelFunc) {
	defer done()
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, msg realtime.JobsMessage) error {
	if msg.Jobs == nil {
		msg.Jobs = []entities.WorkOrder{}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteJSON(msg)
}
