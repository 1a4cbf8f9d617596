package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentMethod         = errors.New("invalid payment_method")
	ErrWorkOrderNotCompleted        = errors.New("work order not completed")
	ErrNothingToReceive             = errors.New("work order has no payable amount")
	ErrAlreadyReceived              = errors.New("payment already received for work order")
	ErrReceiptTooLong               = errors.New("receipt reference too long")
	ErrReceiptFileNotFound          = errors.New("receipt file not found")
	ErrProviderPaymentNotApproved   = errors.New("provider payment not approved")
	ErrProviderAmountMismatch       = errors.New("provider payment amount does not match")
	ErrPaymentGatewayUnauthorized   = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayNotFound       = errors.New("payment gateway payment not found")
	ErrTransactionRepoNotConfigured = errors.New("cash transaction repository not configured")
)

// receiptNamespace derives one transaction id per job.
var receiptNamespace = uuid.MustParse("6f1f0c8e-6b1d-4c5e-9a52-3c1f4d2a7b90")

// ReceivePaymentCommand is the payment-receipt request of a field console.
type ReceivePaymentCommand struct {
	JobID          string
	TeamID         string
	Password       string
	PaymentMethod  string
	Receipt        string
	ReceiptFileKey string
}

// IPaymentReceiptUseCase converts a completed job payable amount into exactly one
// ledger transaction.
//
//   - POST /jobs/{id}/payment-receipt => Receive()
//   - GET  /jobs/{id}/transactions    => ListTransactions()

type IPaymentReceiptUseCase interface {
	Receive(ctx context.Context, cmd ReceivePaymentCommand) (entities.CashTransaction, entities.WorkOrder, error)
	ListTransactions(ctx context.Context, jobID, teamID, password string) ([]entities.CashTransaction, error)
}

type PaymentReceiptUseCase struct {
	txRepo    interfaces.ICashTransactionRepository
	jobRepo   interfaces.IWorkOrderRepository
	files     interfaces.IReceiptFileRepository
	auth      ITeamUseCase
	gateway   interfaces.IPaymentGateway
	publisher interfaces.IJobPublisher
}

var _ IPaymentReceiptUseCase = (*PaymentReceiptUseCase)(nil)

func NewPaymentReceiptUseCase(
	txRepo interfaces.ICashTransactionRepository,
	jobRepo interfaces.IWorkOrderRepository,
	files interfaces.IReceiptFileRepository,
	auth ITeamUseCase,
	gateway interfaces.IPaymentGateway,
	publisher interfaces.IJobPublisher,
) *PaymentReceiptUseCase {
	return &PaymentReceiptUseCase{txRepo: txRepo, jobRepo: jobRepo, files: files, auth: auth, gateway: gateway, publisher: publisher}
}

func (u *PaymentReceiptUseCase) Receive(ctx context.Context, cmd ReceivePaymentCommand) (entities.CashTransaction, entities.WorkOrder, error) {
	log.Printf("[receipt][usecase] receive start raw_job_id=%q method=%q file=%t", cmd.JobID, cmd.PaymentMethod, cmd.ReceiptFileKey != "")
	jobID := strings.TrimSpace(cmd.JobID)
	if jobID == "" {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrInvalidJobID
	}
	method, ok := entities.ParsePaymentMethod(cmd.PaymentMethod)
	if !ok {
		log.Printf("[receipt][usecase] invalid payment method job_id=%s method=%q", jobID, cmd.PaymentMethod)
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrInvalidPaymentMethod
	}
	receipt := strings.TrimSpace(cmd.Receipt)
	if len(receipt) > entities.MaxReceiptLength {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrReceiptTooLong
	}
	if u.auth == nil {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrTeamAuthNotConfigured
	}
	if u.jobRepo == nil {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrJobRepoNotConfigured
	}
	if u.txRepo == nil {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrTransactionRepoNotConfigured
	}

	team, err := u.auth.Authorize(ctx, cmd.TeamID, cmd.Password)
	if err != nil {
		return entities.CashTransaction{}, entities.WorkOrder{}, err
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		log.Printf("[receipt][usecase] failed loading job job_id=%s err=%v", jobID, err)
		return entities.CashTransaction{}, entities.WorkOrder{}, err
	}
	if job.ID == "" {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	if job.TeamID != team.ID {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrJobNotAssignedToTeam
	}
	if job.Status != entities.WorkOrderStatusCompleted {
		log.Printf("[receipt][usecase] job not completed job_id=%s status=%s", jobID, job.Status)
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrWorkOrderNotCompleted
	}
	amount := job.PayableAmount()
	if amount <= 0 {
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrNothingToReceive
	}

	// Both halves of the guard: the flag on the job and the ledger itself.
	if job.Received {
		log.Printf("[receipt][usecase] already received (flag) job_id=%s", jobID)
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrAlreadyReceived
	}
	existing, err := u.txRepo.ListByJobID(ctx, jobID)
	if err != nil {
		log.Printf("[receipt][usecase] ledger lookup failed job_id=%s err=%v", jobID, err)
		return entities.CashTransaction{}, entities.WorkOrder{}, err
	}
	if len(existing) > 0 {
		log.Printf("[receipt][usecase] already received (ledger) job_id=%s transaction_id=%s", jobID, existing[0].ID)
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrAlreadyReceived
	}

	fileKey := strings.TrimSpace(cmd.ReceiptFileKey)
	if fileKey != "" {
		if u.files == nil {
			return entities.CashTransaction{}, entities.WorkOrder{}, ErrReceiptFileNotFound
		}
		f, err := u.files.Get(ctx, fileKey)
		if err != nil {
			return entities.CashTransaction{}, entities.WorkOrder{}, err
		}
		if f.Key == "" {
			log.Printf("[receipt][usecase] receipt file not found job_id=%s key=%s", jobID, fileKey)
			return entities.CashTransaction{}, entities.WorkOrder{}, ErrReceiptFileNotFound
		}
	}

	t := entities.CashTransaction{
		ID:             uuid.NewSHA1(receiptNamespace, []byte(jobID)).String(),
		JobID:          jobID,
		TeamID:         team.ID,
		Amount:         amount,
		PaymentMethod:  method,
		Receipt:        receipt,
		ReceiptFileKey: fileKey,
		Description:    fmt.Sprintf("Recebimento %s - %s", job.Title, job.ClientName),
		CreatedAt:      time.Now().UTC(),
	}

	if err := u.verifyWithProvider(ctx, &t); err != nil {
		return entities.CashTransaction{}, entities.WorkOrder{}, err
	}

	created, err := u.txRepo.CreateForJob(ctx, t)
	if err != nil {
		log.Printf("[receipt][usecase] transaction create failed job_id=%s err=%v", jobID, err)
		return entities.CashTransaction{}, entities.WorkOrder{}, err
	}
	if !created {
		log.Printf("[receipt][usecase] concurrent receipt detected job_id=%s", jobID)
		return entities.CashTransaction{}, entities.WorkOrder{}, ErrAlreadyReceived
	}

	updated, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return entities.CashTransaction{}, entities.WorkOrder{}, err
	}
	log.Printf("[receipt][usecase] receive success job_id=%s transaction_id=%s amount=%.2f method=%s", jobID, t.ID, t.Amount, t.PaymentMethod)

	publishTeamJobs(ctx, u.jobRepo, u.publisher, team.ID)
	return t, updated, nil
}

// verifyWithProvider checks a pix/card receipt reference against the payment
// provider when it looks like a provider payment id. Free-text receipts and
// cash payments are accepted as declared by the crew.
func (u *PaymentReceiptUseCase) verifyWithProvider(ctx context.Context, t *entities.CashTransaction) error {
	if u.gateway == nil || !t.PaymentMethod.ProviderVerifiable() || !isProviderPaymentID(t.Receipt) {
		return nil
	}

	log.Printf("[receipt][usecase] verifying provider payment job_id=%s provider_payment_id=%s", t.JobID, t.Receipt)
	status, amount, raw, err := u.gateway.GetPayment(ctx, t.Receipt)
	if err != nil {
		log.Printf("[receipt][usecase] provider lookup failed job_id=%s err=%v", t.JobID, err)
		if isGatewayNotFound(err) {
			return ErrPaymentGatewayNotFound
		}
		if isGatewayUnauthorized(err) {
			return ErrPaymentGatewayUnauthorized
		}
		return err
	}
	if status != "approved" {
		log.Printf("[receipt][usecase] provider payment not approved job_id=%s status=%s", t.JobID, status)
		return ErrProviderPaymentNotApproved
	}
	if amount > 0 && math.Abs(amount-t.Amount) > 0.009 {
		log.Printf("[receipt][usecase] provider amount mismatch job_id=%s provider=%.2f expected=%.2f", t.JobID, amount, t.Amount)
		return ErrProviderAmountMismatch
	}

	t.ProviderPayloadRaw = raw
	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("[receipt][usecase] provider response unmarshal failed job_id=%s err=%v", t.JobID, err)
	}
	t.ProviderPayload = parsed
	return nil
}

func (u *PaymentReceiptUseCase) ListTransactions(ctx context.Context, jobID, teamID, password string) ([]entities.CashTransaction, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrInvalidJobID
	}
	if u.auth == nil {
		return nil, ErrTeamAuthNotConfigured
	}
	if u.jobRepo == nil {
		return nil, ErrJobRepoNotConfigured
	}
	if u.txRepo == nil {
		return nil, ErrTransactionRepoNotConfigured
	}
	team, err := u.auth.Authorize(ctx, teamID, password)
	if err != nil {
		return nil, err
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, ErrWorkOrderNotFound
	}
	if job.TeamID != team.ID {
		return nil, ErrJobNotAssignedToTeam
	}
	return u.txRepo.ListByJobID(ctx, jobID)
}

func isProviderPaymentID(s string) bool {
	if s == "" || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"not_found\"") || strings.Contains(msg, "\"status\":404")
}
