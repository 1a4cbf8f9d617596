package handlers

import (
	request "fieldops/internal/adapter/http/dto/request"
	response "fieldops/internal/adapter/http/dto/response"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase"
	"fieldops/pkg"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles the team credential exchange and location reports.

type TeamHandler struct {
	usecase usecase.ITeamUseCase
}

func NewTeamHandler(uc usecase.ITeamUseCase) *TeamHandler {
	return &TeamHandler{usecase: uc}
}

// ExchangeCredential validates a team credential and returns the team with its jobs.
//
// @Summary      Exchange a team credential
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      request.TeamCredentialRequest  true  "payload"
// @Success      200      {object}  response.CredentialExchangeResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      401      {object}  pkg.HTTPError
// @Router       /auth/team [post]
func (h *TeamHandler) ExchangeCredential(c *gin.Context) {
	var payload request.TeamCredentialRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	teamID := payload.ResolveTeamID()
	log.Printf("[auth][handler] exchange start team_id=%s", teamID)

	team, jobs, err := h.usecase.Exchange(c.Request.Context(), teamID, payload.Password)
	if err != nil {
		log.Printf("[auth][handler] exchange failed team_id=%s err=%v", teamID, err)
		writeError(c, mapAuthError(err))
		return
	}
	log.Printf("[auth][handler] exchange success team_id=%s jobs=%d", team.ID, len(jobs))

	c.JSON(http.StatusOK, response.FromCredentialExchange(team, jobs))
}

// ReportLocation stores the last device position of the team.
//
// @Summary      Report the team device location
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        team_id  path      string                       true  "Team ID"
// @Param        payload  body      request.TeamLocationRequest  true  "payload"
// @Success      200      {object}  response.TeamResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      401      {object}  pkg.HTTPError
// @Router       /teams/{team_id}/location [put]
func (h *TeamHandler) ReportLocation(c *gin.Context) {
	teamID := c.Param("team_id")
	var payload request.TeamLocationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	loc := entities.Location{
		Latitude:  *payload.Latitude,
		Longitude: *payload.Longitude,
		Address:   payload.Address,
	}
	if payload.CapturedAt != nil {
		loc.CapturedAt = payload.CapturedAt.UTC()
	}

	team, err := h.usecase.ReportLocation(c.Request.Context(), teamID, payload.Password, loc)
	if err != nil {
		log.Printf("[location][handler] report failed team_id=%s err=%v", teamID, err)
		writeError(c, mapAuthError(err))
		return
	}
	log.Printf("[location][handler] report success team_id=%s", team.ID)

	c.JSON(http.StatusOK, response.FromTeam(team))
}

func mapAuthError(err error) *pkg.AppError {
	if appErr, ok := mapTeamError(err); ok {
		return appErr
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
