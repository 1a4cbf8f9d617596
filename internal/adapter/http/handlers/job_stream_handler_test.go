package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fieldops/internal/adapter/http/handlers/mocks"
	"fieldops/internal/adapter/realtime"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase"
	mock_interfaces "fieldops/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/mock/gomock"
)

func TestJobStreamHandler_StreamJobs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("rejects bad credential before upgrade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockITeamUseCase(ctrl)
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		r := gin.New()
		r.GET("/v1/teams/:team_id/jobs/stream", NewJobStreamHandler(auth, repo, realtime.NewHub()).StreamJobs)

		auth.EXPECT().Authorize(gomock.Any(), "team-1", "wrong").Return(entities.Team{}, usecase.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodGet, "/v1/teams/team-1/jobs/stream", nil)
		req.Header.Set(HeaderTeamPassword, "wrong")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("initial snapshot then updates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockITeamUseCase(ctrl)
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		hub := realtime.NewHub()
		r := gin.New()
		r.GET("/v1/teams/:team_id/jobs/stream", NewJobStreamHandler(auth, repo, hub).StreamJobs)
		srv := httptest.NewServer(r)
		defer srv.Close()

		auth.EXPECT().Authorize(gomock.Any(), "team-1", "s3cret").Return(entities.Team{ID: "team-1"}, nil)
		repo.EXPECT().ListByTeamID(gomock.Any(), "team-1").Return([]entities.WorkOrder{{ID: "job-1", TeamID: "team-1"}}, nil)

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/teams/team-1/jobs/stream"
		conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{HeaderTeamPassword: []string{"s3cret"}})
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

		var first realtime.JobsMessage
		if err := conn.ReadJSON(&first); err != nil {
			t.Fatalf("read initial: %v", err)
		}
		if first.Type != realtime.MessageTypeUpdate || len(first.Jobs) != 1 {
			t.Fatalf("unexpected initial message: %+v", first)
		}

		// the subscription is registered before the first frame is written
		hub.Publish("team-1", []entities.WorkOrder{{ID: "job-1"}, {ID: "job-2"}})

		var next realtime.JobsMessage
		if err := conn.ReadJSON(&next); err != nil {
			t.Fatalf("read update: %v", err)
		}
		if len(next.Jobs) != 2 {
			t.Fatalf("expected 2 jobs in update, got %+v", next)
		}
	})

	t.Run("query password is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockITeamUseCase(ctrl)
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		r := gin.New()
		r.GET("/v1/teams/:team_id/jobs/stream", NewJobStreamHandler(auth, repo, realtime.NewHub()).StreamJobs)

		auth.EXPECT().Authorize(gomock.Any(), "team-1", "").Return(entities.Team{}, usecase.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/teams/team-1/jobs/stream?password=xyz-secret", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("header credential stays out of the access log", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockITeamUseCase(ctrl)
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		var logs bytes.Buffer
		r := gin.New()
		r.Use(gin.LoggerWithWriter(&logs))
		r.GET("/v1/teams/:team_id/jobs/stream", NewJobStreamHandler(auth, repo, realtime.NewHub()).StreamJobs)

		auth.EXPECT().Authorize(gomock.Any(), "team-1", "xyz-secret").Return(entities.Team{}, usecase.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodGet, "/v1/teams/team-1/jobs/stream", nil)
		req.Header.Set(HeaderTeamPassword, "xyz-secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if !strings.Contains(logs.String(), "/v1/teams/team-1/jobs/stream") {
			t.Fatalf("expected an access log line, got %q", logs.String())
		}
		if strings.Contains(logs.String(), "xyz-secret") {
			t.Fatalf("team password written to access log: %s", logs.String())
		}
	})
}
