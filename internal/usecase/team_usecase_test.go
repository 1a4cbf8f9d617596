package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldops/internal/domain/entities"
	mock_interfaces "fieldops/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func teamWithPassword(t *testing.T, id, password string) entities.Team {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return entities.Team{ID: id, Name: "Equipe " + id, PasswordHash: string(hash)}
}

// stubAuth authorizes every call as team, or fails with err.
type stubAuth struct {
	team entities.Team
	err  error
}

func (s stubAuth) Exchange(context.Context, string, string) (entities.Team, []entities.WorkOrder, error) {
	return s.team, nil, s.err
}

func (s stubAuth) Authorize(context.Context, string, string) (entities.Team, error) {
	if s.err != nil {
		return entities.Team{}, s.err
	}
	return s.team, nil
}

func (s stubAuth) ReportLocation(context.Context, string, string, entities.Location) (entities.Team, error) {
	return s.team, s.err
}

func TestTeamUseCase_Authorize(t *testing.T) {
	t.Run("empty team id", func(t *testing.T) {
		uc := NewTeamUseCase(nil, nil)
		_, err := uc.Authorize(context.Background(), "  ", "x")
		if !errors.Is(err, ErrInvalidTeamID) {
			t.Fatalf("expected ErrInvalidTeamID, got %v", err)
		}
	})

	t.Run("empty password", func(t *testing.T) {
		uc := NewTeamUseCase(nil, nil)
		_, err := uc.Authorize(context.Background(), "team-1", "")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("repository not configured", func(t *testing.T) {
		uc := NewTeamUseCase(nil, nil)
		_, err := uc.Authorize(context.Background(), "team-1", "x")
		if !errors.Is(err, ErrTeamRepoUnavailable) {
			t.Fatalf("expected ErrTeamRepoUnavailable, got %v", err)
		}
	})

	t.Run("unknown team answers like a wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		teams := mock_interfaces.NewMockITeamRepository(ctrl)
		uc := NewTeamUseCase(teams, nil)

		teams.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Team{}, nil)

		_, err := uc.Authorize(context.Background(), "ghost", "x")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		teams := mock_interfaces.NewMockITeamRepository(ctrl)
		uc := NewTeamUseCase(teams, nil)

		teams.EXPECT().GetByID(gomock.Any(), "team-1").Return(teamWithPassword(t, "team-1", "s3cret"), nil)

		_, err := uc.Authorize(context.Background(), "team-1", "guess")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		teams := mock_interfaces.NewMockITeamRepository(ctrl)
		uc := NewTeamUseCase(teams, nil)

		teams.EXPECT().GetByID(gomock.Any(), "team-1").Return(entities.Team{}, errors.New("db"))

		_, err := uc.Authorize(context.Background(), "team-1", "x")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestTeamUseCase_Exchange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	teams := mock_interfaces.NewMockITeamRepository(ctrl)
	jobs := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
	uc := NewTeamUseCase(teams, jobs)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	teams.EXPECT().GetByID(gomock.Any(), "team-1").Return(teamWithPassword(t, "team-1", "s3cret"), nil)
	jobs.EXPECT().ListByTeamID(gomock.Any(), "team-1").Return([]entities.WorkOrder{
		{ID: "job-c", PlannedDate: day.Add(48 * time.Hour)},
		{ID: "job-b", PlannedDate: day},
		{ID: "job-a", PlannedDate: day},
	}, nil)

	team, list, err := uc.Exchange(context.Background(), " team-1 ", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.ID != "team-1" {
		t.Fatalf("unexpected team: %+v", team)
	}
	got := []string{list[0].ID, list[1].ID, list[2].ID}
	if got[0] != "job-a" || got[1] != "job-b" || got[2] != "job-c" {
		t.Fatalf("jobs not sorted by planned date then id: %v", got)
	}
}

func TestTeamUseCase_ReportLocation(t *testing.T) {
	t.Run("invalid coordinates rejected before authorization", func(t *testing.T) {
		uc := NewTeamUseCase(nil, nil)
		_, err := uc.ReportLocation(context.Background(), "team-1", "x", entities.Location{Latitude: 91, Longitude: 0})
		if !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation, got %v", err)
		}
	})

	t.Run("stores location with capture time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		teams := mock_interfaces.NewMockITeamRepository(ctrl)
		uc := NewTeamUseCase(teams, nil)

		team := teamWithPassword(t, "team-1", "s3cret")
		teams.EXPECT().GetByID(gomock.Any(), "team-1").Return(team, nil)
		teams.EXPECT().UpdateLastLocation(gomock.Any(), "team-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, loc entities.Location) (entities.Team, error) {
				if loc.CapturedAt.IsZero() || loc.Address != "Rua A, 10" {
					t.Fatalf("unexpected location: %+v", loc)
				}
				team.LastLocation = &loc
				return team, nil
			})

		got, err := uc.ReportLocation(context.Background(), "team-1", "s3cret", entities.Location{Latitude: -23.55, Longitude: -46.63, Address: " Rua A, 10 "})
		if err != nil || got.LastLocation == nil {
			t.Fatalf("unexpected result team=%+v err=%v", got, err)
		}
	})

	t.Run("team vanished", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		teams := mock_interfaces.NewMockITeamRepository(ctrl)
		uc := NewTeamUseCase(teams, nil)

		teams.EXPECT().GetByID(gomock.Any(), "team-1").Return(teamWithPassword(t, "team-1", "s3cret"), nil)
		teams.EXPECT().UpdateLastLocation(gomock.Any(), "team-1", gomock.Any()).Return(entities.Team{}, nil)

		_, err := uc.ReportLocation(context.Background(), "team-1", "s3cret", entities.Location{Latitude: 1, Longitude: 1})
		if !errors.Is(err, ErrTeamNotFound) {
			t.Fatalf("expected ErrTeamNotFound, got %v", err)
		}
	})
}
