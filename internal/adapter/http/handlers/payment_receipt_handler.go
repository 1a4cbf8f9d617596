package handlers

import (
	request "fieldops/internal/adapter/http/dto/request"
	response "fieldops/internal/adapter/http/dto/response"
	"fieldops/internal/usecase"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	HeaderTeamID       = "X-Team-Id"
	HeaderTeamPassword = "X-Team-Password"
)

// PaymentReceiptHandler handles payment receipts and the per-job cash ledger.

type PaymentReceiptHandler struct {
	usecase usecase.IPaymentReceiptUseCase
}

func NewPaymentReceiptHandler(uc usecase.IPaymentReceiptUseCase) *PaymentReceiptHandler {
	return &PaymentReceiptHandler{usecase: uc}
}

// ReceivePayment records the payment of a completed job.
//
// @Summary      Record the payment of a completed job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job_id   path      string                         true  "Job ID"
// @Param        payload  body      request.PaymentReceiptRequest  true  "payload"
// @Success      201      {object}  response.PaymentReceiptResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Router       /jobs/{job_id}/payment-receipt [post]
func (h *PaymentReceiptHandler) ReceivePayment(c *gin.Context) {
	jobID := c.Param("job_id")
	var payload request.PaymentReceiptRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	log.Printf("[receipt][handler] receive start job_id=%s team_id=%s method=%s", jobID, payload.TeamID, payload.PaymentMethod)

	tx, job, err := h.usecase.Receive(c.Request.Context(), usecase.ReceivePaymentCommand{
		JobID:          jobID,
		TeamID:         payload.TeamID,
		Password:       payload.Password,
		PaymentMethod:  payload.PaymentMethod,
		Receipt:        payload.Receipt,
		ReceiptFileKey: payload.ReceiptFileKey,
	})
	if err != nil {
		log.Printf("[receipt][handler] receive failed job_id=%s err=%v", jobID, err)
		writeError(c, mapPaymentReceiptError(err))
		return
	}
	log.Printf("[receipt][handler] receive success job_id=%s transaction_id=%s amount=%.2f", jobID, tx.ID, tx.Amount)

	c.JSON(http.StatusCreated, response.PaymentReceiptResponse{
		Transaction: response.FromCashTransaction(tx),
		Job:         job,
	})
}

// ListTransactions returns the ledger entries of a job; the console uses it to
// check whether a receipt already landed after a lost response.
func (h *PaymentReceiptHandler) ListTransactions(c *gin.Context) {
	jobID := c.Param("job_id")
	teamID := c.GetHeader(HeaderTeamID)

	txs, err := h.usecase.ListTransactions(c.Request.Context(), jobID, teamID, c.GetHeader(HeaderTeamPassword))
	if err != nil {
		log.Printf("[receipt][handler] list failed job_id=%s team_id=%s err=%v", jobID, teamID, err)
		writeError(c, mapPaymentReceiptError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromCashTransactions(txs))
}
