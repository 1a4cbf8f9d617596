package usecase

import (
	"context"
	"errors"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidTeamID       = errors.New("invalid team_id")
	ErrInvalidCredentials  = errors.New("invalid team credentials")
	ErrInvalidLocation     = errors.New("invalid location")
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamRepoUnavailable = errors.New("team repository not configured")
)

// ITeamUseCase covers the team credential exchange and the location report.
//
//   - POST /auth/team => Exchange()
//   - every mutating route re-presents the credential => Authorize()
//   - PUT /teams/{id}/location => ReportLocation()

type ITeamUseCase interface {
	Exchange(ctx context.Context, teamID, password string) (entities.Team, []entities.WorkOrder, error)
	Authorize(ctx context.Context, teamID, password string) (entities.Team, error)
	ReportLocation(ctx context.Context, teamID, password string, loc entities.Location) (entities.Team, error)
}

type TeamUseCase struct {
	teams interfaces.ITeamRepository
	jobs  interfaces.IWorkOrderRepository
}

var _ ITeamUseCase = (*TeamUseCase)(nil)

func NewTeamUseCase(teams interfaces.ITeamRepository, jobs interfaces.IWorkOrderRepository) *TeamUseCase {
	return &TeamUseCase{teams: teams, jobs: jobs}
}

func (u *TeamUseCase) Exchange(ctx context.Context, teamID, password string) (entities.Team, []entities.WorkOrder, error) {
	team, err := u.Authorize(ctx, teamID, password)
	if err != nil {
		return entities.Team{}, nil, err
	}

	jobs, err := u.jobs.ListByTeamID(ctx, team.ID)
	if err != nil {
		log.Printf("[auth][usecase] list jobs failed team_id=%s err=%v", team.ID, err)
		return entities.Team{}, nil, err
	}
	SortJobs(jobs)
	log.Printf("[auth][usecase] exchange success team_id=%s jobs=%d", team.ID, len(jobs))
	return team, jobs, nil
}

func (u *TeamUseCase) Authorize(ctx context.Context, teamID, password string) (entities.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return entities.Team{}, ErrInvalidTeamID
	}
	if password == "" {
		return entities.Team{}, ErrInvalidCredentials
	}
	if u.teams == nil {
		return entities.Team{}, ErrTeamRepoUnavailable
	}

	team, err := u.teams.GetByID(ctx, teamID)
	if err != nil {
		return entities.Team{}, err
	}
	// Unknown team and wrong password answer the same way.
	if team.ID == "" {
		log.Printf("[auth][usecase] unknown team team_id=%s", teamID)
		return entities.Team{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(team.PasswordHash), []byte(password)); err != nil {
		log.Printf("[auth][usecase] password rejected team_id=%s", teamID)
		return entities.Team{}, ErrInvalidCredentials
	}
	return team, nil
}

func (u *TeamUseCase) ReportLocation(ctx context.Context, teamID, password string, loc entities.Location) (entities.Team, error) {
	if !validCoordinate(loc.Latitude, 90) || !validCoordinate(loc.Longitude, 180) {
		return entities.Team{}, ErrInvalidLocation
	}
	team, err := u.Authorize(ctx, teamID, password)
	if err != nil {
		return entities.Team{}, err
	}
	if loc.CapturedAt.IsZero() {
		loc.CapturedAt = time.Now().UTC()
	}
	loc.Address = strings.TrimSpace(loc.Address)

	updated, err := u.teams.UpdateLastLocation(ctx, team.ID, loc)
	if err != nil {
		return entities.Team{}, err
	}
	if updated.ID == "" {
		return entities.Team{}, ErrTeamNotFound
	}
	log.Printf("[team][usecase] location reported team_id=%s lat=%.5f lng=%.5f", team.ID, loc.Latitude, loc.Longitude)
	return updated, nil
}

func validCoordinate(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}

// SortJobs orders a team queue by planned date, then id for a stable display.
func SortJobs(jobs []entities.WorkOrder) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if !jobs[i].PlannedDate.Equal(jobs[j].PlannedDate) {
			return jobs[i].PlannedDate.Before(jobs[j].PlannedDate)
		}
		return jobs[i].ID < jobs[j].ID
	})
}
