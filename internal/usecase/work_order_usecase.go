package usecase

import (
	"context"
	"errors"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"
	"log"
	"strings"
	"time"
)

var (
	ErrInvalidJobID          = errors.New("invalid job_id")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrWorkOrderNotFound     = errors.New("work order not found")
	ErrJobNotAssignedToTeam  = errors.New("work order not assigned to team")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrJobRepoNotConfigured  = errors.New("work order repository not configured")
	ErrTeamAuthNotConfigured = errors.New("team authorization not configured")
)

// TransitionCommand is a start/complete request from a field console.
//
// The team credential is re-presented on every mutation. At is the device clock
// at the moment of the action; when absent the server clock is used.
type TransitionCommand struct {
	JobID    string
	TeamID   string
	Password string
	Status   entities.WorkOrderStatus
	At       *time.Time
}

// IWorkOrderUseCase drives the work order lifecycle.
//
//   - PATCH /jobs/{id} status=in_progress => Start()
//   - PATCH /jobs/{id} status=completed   => Complete()

type IWorkOrderUseCase interface {
	Transition(ctx context.Context, cmd TransitionCommand) (entities.WorkOrder, error)
	Start(ctx context.Context, cmd TransitionCommand) (entities.WorkOrder, error)
	Complete(ctx context.Context, cmd TransitionCommand) (entities.WorkOrder, error)
}

type WorkOrderUseCase struct {
	repo      interfaces.IWorkOrderRepository
	auth      ITeamUseCase
	publisher interfaces.IJobPublisher
}

var _ IWorkOrderUseCase = (*WorkOrderUseCase)(nil)

func NewWorkOrderUseCase(repo interfaces.IWorkOrderRepository, auth ITeamUseCase, publisher interfaces.IJobPublisher) *WorkOrderUseCase {
	return &WorkOrderUseCase{repo: repo, auth: auth, publisher: publisher}
}

// Transition dispatches on the requested target status.
func (u *WorkOrderUseCase) Transition(ctx context.Context, cmd TransitionCommand) (entities.WorkOrder, error) {
	switch cmd.Status {
	case entities.WorkOrderStatusInProgress:
		return u.Start(ctx, cmd)
	case entities.WorkOrderStatusCompleted:
		return u.Complete(ctx, cmd)
	default:
		return entities.WorkOrder{}, ErrInvalidStatus
	}
}

func (u *WorkOrderUseCase) Start(ctx context.Context, cmd TransitionCommand) (entities.WorkOrder, error) {
	job, err := u.load(ctx, cmd)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !job.CanStart() {
		log.Printf("[job][usecase] start refused job_id=%s status=%s", job.ID, job.Status)
		return entities.WorkOrder{}, ErrInvalidTransition
	}

	upd := interfaces.StatusUpdate{From: job.Status, To: entities.WorkOrderStatusInProgress}
	if job.StartedAt == nil {
		upd.StartedAt = actionTime(cmd.At)
	}
	return u.apply(ctx, job, upd)
}

func (u *WorkOrderUseCase) Complete(ctx context.Context, cmd TransitionCommand) (entities.WorkOrder, error) {
	job, err := u.load(ctx, cmd)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !job.CanComplete() {
		log.Printf("[job][usecase] complete refused job_id=%s status=%s", job.ID, job.Status)
		return entities.WorkOrder{}, ErrInvalidTransition
	}

	upd := interfaces.StatusUpdate{From: job.Status, To: entities.WorkOrderStatusCompleted}
	if job.FinishedAt == nil {
		upd.FinishedAt = actionTime(cmd.At)
	}
	return u.apply(ctx, job, upd)
}

func (u *WorkOrderUseCase) load(ctx context.Context, cmd TransitionCommand) (entities.WorkOrder, error) {
	jobID := strings.TrimSpace(cmd.JobID)
	if jobID == "" {
		return entities.WorkOrder{}, ErrInvalidJobID
	}
	if u.auth == nil {
		return entities.WorkOrder{}, ErrTeamAuthNotConfigured
	}
	if u.repo == nil {
		return entities.WorkOrder{}, ErrJobRepoNotConfigured
	}

	team, err := u.auth.Authorize(ctx, cmd.TeamID, cmd.Password)
	if err != nil {
		return entities.WorkOrder{}, err
	}

	job, err := u.repo.GetByID(ctx, jobID)
	if err != nil {
		log.Printf("[job][usecase] load failed job_id=%s err=%v", jobID, err)
		return entities.WorkOrder{}, err
	}
	if job.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	if job.TeamID != team.ID {
		log.Printf("[job][usecase] job not assigned job_id=%s job_team=%s team_id=%s", job.ID, job.TeamID, team.ID)
		return entities.WorkOrder{}, ErrJobNotAssignedToTeam
	}
	return job, nil
}

func (u *WorkOrderUseCase) apply(ctx context.Context, job entities.WorkOrder, upd interfaces.StatusUpdate) (entities.WorkOrder, error) {
	updated, err := u.repo.UpdateStatus(ctx, job.ID, upd)
	if err != nil {
		log.Printf("[job][usecase] update failed job_id=%s to=%s err=%v", job.ID, upd.To, err)
		return entities.WorkOrder{}, err
	}
	// Empty result: the stored status moved since we read it.
	if updated.ID == "" {
		log.Printf("[job][usecase] concurrent transition job_id=%s from=%s to=%s", job.ID, upd.From, upd.To)
		return entities.WorkOrder{}, ErrInvalidTransition
	}
	log.Printf("[job][usecase] transition success job_id=%s from=%s to=%s", job.ID, upd.From, upd.To)

	publishTeamJobs(ctx, u.repo, u.publisher, updated.TeamID)
	return updated, nil
}

func actionTime(at *time.Time) *time.Time {
	now := time.Now().UTC()
	if at != nil && !at.IsZero() && !at.After(now.Add(5*time.Minute)) {
		t := at.UTC()
		return &t
	}
	return &now
}

// publishTeamJobs pushes a fresh snapshot to the team consoles. Failures are
// logged only; the next successful mutation republishes the full list.
func publishTeamJobs(ctx context.Context, repo interfaces.IWorkOrderRepository, publisher interfaces.IJobPublisher, teamID string) {
	if publisher == nil || repo == nil || teamID == "" {
		return
	}
	jobs, err := repo.ListByTeamID(ctx, teamID)
	if err != nil {
		log.Printf("[job][usecase] snapshot list failed team_id=%s err=%v", teamID, err)
		return
	}
	SortJobs(jobs)
	publisher.Publish(teamID, jobs)
}
