package handlers

import (
	"errors"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase"
	"fieldops/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapTeamError covers the errors every credential-bearing route can return.
func mapTeamError(err error) (*pkg.AppError, bool) {
	switch {
	case errors.Is(err, usecase.ErrInvalidTeamID):
		return pkg.NewDomainErrorSimple("INVALID_TEAM_ID", "Invalid team_id", http.StatusBadRequest), true
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid team credentials", http.StatusUnauthorized), true
	case errors.Is(err, usecase.ErrInvalidLocation):
		return pkg.NewDomainErrorSimple("INVALID_LOCATION", "Invalid location", http.StatusBadRequest), true
	case errors.Is(err, usecase.ErrTeamNotFound):
		return pkg.NewDomainErrorSimple("TEAM_NOT_FOUND", "Team not found", http.StatusNotFound), true
	case errors.Is(err, usecase.ErrTeamRepoUnavailable), errors.Is(err, usecase.ErrTeamAuthNotConfigured):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Team authorization unavailable", err, http.StatusServiceUnavailable), true
	}
	return nil, false
}

func mapWorkOrderError(err error) *pkg.AppError {
	if appErr, ok := mapTeamError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID), errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrJobNotAssignedToTeam):
		return pkg.NewDomainErrorSimple("JOB_NOT_ASSIGNED", "Job not assigned to this team", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("TRANSITION_NOT_ALLOWED", "Status transition not allowed", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobRepoNotConfigured):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Job repository unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapPaymentReceiptError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_METHOD", "Invalid payment method", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrReceiptTooLong):
		return pkg.NewDomainErrorSimple("INVALID_RECEIPT", "Receipt reference too long", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrReceiptFileNotFound):
		return pkg.NewDomainErrorSimple("RECEIPT_FILE_NOT_FOUND", "Receipt file not found", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkOrderNotCompleted):
		return pkg.NewDomainErrorSimple("JOB_NOT_COMPLETED", "Job not completed", http.StatusConflict)
	case errors.Is(err, usecase.ErrNothingToReceive):
		return pkg.NewDomainErrorSimple("NOTHING_TO_RECEIVE", "Job has no payable amount", http.StatusConflict)
	case errors.Is(err, usecase.ErrAlreadyReceived):
		return pkg.NewDomainErrorSimple("ALREADY_RECEIVED", "Payment already received for this job", http.StatusConflict)
	case errors.Is(err, usecase.ErrProviderPaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_APPROVED", "Provider payment not approved", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrProviderAmountMismatch):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_AMOUNT_MISMATCH", "Provider payment amount does not match the job", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentGatewayNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_FOUND", "Provider payment not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrTransactionRepoNotConfigured):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Transaction repository unavailable", err, http.StatusServiceUnavailable)
	default:
		return mapWorkOrderError(err)
	}
}

func mapUploadError(err error) *pkg.AppError {
	if appErr, ok := mapTeamError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, entities.ErrReceiptFileEmpty):
		return pkg.NewDomainErrorSimple("EMPTY_FILE", "Receipt file is empty", http.StatusBadRequest)
	case errors.Is(err, entities.ErrReceiptFileTooLarge):
		return pkg.NewDomainErrorSimple("FILE_TOO_LARGE", "Receipt file exceeds 5 MiB", http.StatusRequestEntityTooLarge)
	case errors.Is(err, entities.ErrReceiptFileUnsupported):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_FILE_TYPE", "Receipt must be JPEG, PNG, WEBP or PDF", http.StatusUnsupportedMediaType)
	case errors.Is(err, usecase.ErrFileRepoNotConfigured):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "File storage unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
