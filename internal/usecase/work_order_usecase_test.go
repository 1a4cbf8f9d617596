package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"
	mock_interfaces "fieldops/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var team1 = entities.Team{ID: "team-1"}

func TestWorkOrderUseCase_Validations(t *testing.T) {
	t.Run("empty job id", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, stubAuth{team: team1}, nil)
		_, err := uc.Start(context.Background(), TransitionCommand{JobID: " "})
		if !errors.Is(err, ErrInvalidJobID) {
			t.Fatalf("expected ErrInvalidJobID, got %v", err)
		}
	})

	t.Run("auth not configured", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, nil, nil)
		_, err := uc.Start(context.Background(), TransitionCommand{JobID: "job-1"})
		if !errors.Is(err, ErrTeamAuthNotConfigured) {
			t.Fatalf("expected ErrTeamAuthNotConfigured, got %v", err)
		}
	})

	t.Run("repository not configured", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, stubAuth{team: team1}, nil)
		_, err := uc.Complete(context.Background(), TransitionCommand{JobID: "job-1"})
		if !errors.Is(err, ErrJobRepoNotConfigured) {
			t.Fatalf("expected ErrJobRepoNotConfigured, got %v", err)
		}
	})

	t.Run("unsupported target status", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, stubAuth{team: team1}, nil)
		_, err := uc.Transition(context.Background(), TransitionCommand{JobID: "job-1", Status: entities.WorkOrderStatusCancelled})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("credential rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{err: ErrInvalidCredentials}, nil)

		_, err := uc.Start(context.Background(), TransitionCommand{JobID: "job-1"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("job of another team", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.WorkOrder{ID: "job-1", TeamID: "team-2", Status: entities.WorkOrderStatusPending}, nil)

		_, err := uc.Start(context.Background(), TransitionCommand{JobID: "job-1"})
		if !errors.Is(err, ErrJobNotAssignedToTeam) {
			t.Fatalf("expected ErrJobNotAssignedToTeam, got %v", err)
		}
	})

	t.Run("job not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.WorkOrder{}, nil)

		_, err := uc.Start(context.Background(), TransitionCommand{JobID: "job-1"})
		if !errors.Is(err, ErrWorkOrderNotFound) {
			t.Fatalf("expected ErrWorkOrderNotFound, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_Start(t *testing.T) {
	t.Run("pending job starts and publishes snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		pub := mock_interfaces.NewMockIJobPublisher(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, pub)

		at := time.Now().Add(-2 * time.Minute).UTC()
		pending := entities.WorkOrder{ID: "job-1", TeamID: "team-1", Status: entities.WorkOrderStatusPending}
		started := pending
		started.Status = entities.WorkOrderStatusInProgress
		started.StartedAt = &at

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(pending, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "job-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, upd interfaces.StatusUpdate) (entities.WorkOrder, error) {
				if upd.From != entities.WorkOrderStatusPending || upd.To != entities.WorkOrderStatusInProgress {
					t.Fatalf("unexpected update: %+v", upd)
				}
				if upd.StartedAt == nil || !upd.StartedAt.Equal(at) || upd.FinishedAt != nil {
					t.Fatalf("expected device start time, got %+v", upd)
				}
				return started, nil
			})
		repo.EXPECT().ListByTeamID(gomock.Any(), "team-1").Return([]entities.WorkOrder{started}, nil)
		pub.EXPECT().Publish("team-1", []entities.WorkOrder{started})

		got, err := uc.Transition(context.Background(), TransitionCommand{JobID: "job-1", Status: entities.WorkOrderStatusInProgress, At: &at})
		if err != nil || got.Status != entities.WorkOrderStatusInProgress {
			t.Fatalf("unexpected result job=%+v err=%v", got, err)
		}
	})

	for _, status := range []entities.WorkOrderStatus{entities.WorkOrderStatusInProgress, entities.WorkOrderStatusCompleted, entities.WorkOrderStatusCancelled} {
		t.Run("refused from "+string(status), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
			uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, nil)

			repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.WorkOrder{ID: "job-1", TeamID: "team-1", Status: status}, nil)

			_, err := uc.Start(context.Background(), TransitionCommand{JobID: "job-1"})
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}

	t.Run("concurrent transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.WorkOrder{ID: "job-1", TeamID: "team-1", Status: entities.WorkOrderStatusPending}, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "job-1", gomock.Any()).Return(entities.WorkOrder{}, nil)

		_, err := uc.Start(context.Background(), TransitionCommand{JobID: "job-1"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_Complete(t *testing.T) {
	startedAt := time.Now().Add(-time.Hour).UTC()

	t.Run("pending job with start time completes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, nil)

		job := entities.WorkOrder{ID: "job-1", TeamID: "team-1", Status: entities.WorkOrderStatusPending, StartedAt: &startedAt}
		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "job-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, upd interfaces.StatusUpdate) (entities.WorkOrder, error) {
				if upd.To != entities.WorkOrderStatusCompleted || upd.FinishedAt == nil || upd.StartedAt != nil {
					t.Fatalf("unexpected update: %+v", upd)
				}
				job.Status = upd.To
				job.FinishedAt = upd.FinishedAt
				return job, nil
			})

		got, err := uc.Complete(context.Background(), TransitionCommand{JobID: "job-1"})
		if err != nil || got.Status != entities.WorkOrderStatusCompleted {
			t.Fatalf("unexpected result job=%+v err=%v", got, err)
		}
	})

	t.Run("pending job never started is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.WorkOrder{ID: "job-1", TeamID: "team-1", Status: entities.WorkOrderStatusPending}, nil)

		_, err := uc.Complete(context.Background(), TransitionCommand{JobID: "job-1"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("publish failure does not fail the mutation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		pub := mock_interfaces.NewMockIJobPublisher(ctrl)
		uc := NewWorkOrderUseCase(repo, stubAuth{team: team1}, pub)

		job := entities.WorkOrder{ID: "job-1", TeamID: "team-1", Status: entities.WorkOrderStatusInProgress, StartedAt: &startedAt}
		done := job
		done.Status = entities.WorkOrderStatusCompleted
		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "job-1", gomock.Any()).Return(done, nil)
		repo.EXPECT().ListByTeamID(gomock.Any(), "team-1").Return(nil, errors.New("throttled"))

		if _, err := uc.Complete(context.Background(), TransitionCommand{JobID: "job-1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestActionTime(t *testing.T) {
	past := time.Now().Add(-10 * time.Minute)
	if got := actionTime(&past); !got.Equal(past.UTC()) {
		t.Fatalf("expected device time kept, got %v", got)
	}
	future := time.Now().Add(time.Hour)
	if got := actionTime(&future); got.After(time.Now().Add(time.Minute)) {
		t.Fatalf("expected far-future device time replaced, got %v", got)
	}
	if got := actionTime(nil); got == nil || got.IsZero() {
		t.Fatalf("expected server time")
	}
}
