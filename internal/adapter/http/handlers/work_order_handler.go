package handlers

import (
	request "fieldops/internal/adapter/http/dto/request"
	"fieldops/internal/usecase"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WorkOrderHandler handles start/complete mutations coming from field consoles.

type WorkOrderHandler struct {
	usecase usecase.IWorkOrderUseCase
}

func NewWorkOrderHandler(uc usecase.IWorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{usecase: uc}
}

// MutateJob moves a job to in_progress or completed and returns the stored record.
//
// @Summary      Start or complete a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job_id   path      string                      true  "Job ID"
// @Param        payload  body      request.JobMutationRequest  true  "payload"
// @Success      200      {object}  entities.WorkOrder
// @Failure      400      {object}  pkg.HTTPError
// @Failure      401      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /jobs/{job_id} [patch]
func (h *WorkOrderHandler) MutateJob(c *gin.Context) {
	jobID := c.Param("job_id")
	var payload request.JobMutationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	status, err := payload.ResolveStatus()
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	log.Printf("[job][handler] mutate start job_id=%s team_id=%s status=%s", jobID, payload.TeamID, status)

	job, err := h.usecase.Transition(c.Request.Context(), usecase.TransitionCommand{
		JobID:    jobID,
		TeamID:   payload.TeamID,
		Password: payload.Password,
		Status:   status,
		At:       payload.ResolveAt(status),
	})
	if err != nil {
		log.Printf("[job][handler] mutate failed job_id=%s err=%v", jobID, err)
		writeError(c, mapWorkOrderError(err))
		return
	}
	log.Printf("[job][handler] mutate success job_id=%s status=%s", job.ID, job.Status)

	c.JSON(http.StatusOK, job)
}
