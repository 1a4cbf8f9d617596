// Package lifecycle runs the job commands of the field console: start,
// complete and receive payment. Guards are checked on the board first, so a
// refused command never reaches the network; the board only ever takes the
// job the backend returns.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fieldops/internal/console/auth"
	"fieldops/internal/console/backend"
	"fieldops/internal/console/board"
	"fieldops/internal/console/notify"
	"fieldops/internal/domain/entities"
)

var (
	ErrJobNotFound           = errors.New("job not on the board")
	ErrTransitionNotAllowed  = errors.New("transition not allowed")
	ErrNotConfirmed          = errors.New("start not confirmed")
	ErrBusy                  = errors.New("a command for this job is already running")
	ErrAlreadyReceived       = errors.New("payment already received")
	ErrNothingToReceive      = errors.New("job has no payable amount")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrReceiptTooLong        = fmt.Errorf("receipt reference longer than %d characters", entities.MaxReceiptLength)
)

// API is the slice of the backend client the engine drives.
type API interface {
	MutateJob(ctx context.Context, cred backend.Credential, jobID string, status entities.WorkOrderStatus, at time.Time) (entities.WorkOrder, error)
	ListTransactions(ctx context.Context, cred backend.Credential, jobID string) ([]entities.CashTransaction, error)
	UploadReceipt(ctx context.Context, cred backend.Credential, filename string, data []byte) (string, error)
	ReceivePayment(ctx context.Context, cred backend.Credential, jobID string, p backend.PaymentReceipt) (entities.CashTransaction, entities.WorkOrder, error)
}

// Confirmer asks the crew to confirm starting a job.
type Confirmer interface {
	Confirm(ctx context.Context, job entities.WorkOrder) (bool, error)
}

type ConfirmFunc func(ctx context.Context, job entities.WorkOrder) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, job entities.WorkOrder) (bool, error) {
	return f(ctx, job)
}

// AlwaysConfirm approves every start, used by --yes.
var AlwaysConfirm = ConfirmFunc(func(context.Context, entities.WorkOrder) (bool, error) { return true, nil })

// ReceiptUpload is an optional receipt photo or PDF.
type ReceiptUpload struct {
	Filename string
	Data     []byte
}

// Payment is the input of ReceivePayment.
type Payment struct {
	Method  string
	Receipt string
	File    *ReceiptUpload
}

type Engine struct {
	api      API
	board    *board.Board
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewEngine(api API, b *board.Board, notifier notify.Notifier, logger *slog.Logger) *Engine {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{api: api, board: b, notifier: notifier, logger: logger, now: time.Now}
}

// Start moves a pending job to in_progress after the crew confirms.
func (e *Engine) Start(ctx context.Context, s auth.Session, jobID string, confirmer Confirmer) (entities.WorkOrder, error) {
	job, err := e.lookup(jobID)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !job.CanStart() {
		return entities.WorkOrder{}, e.refuse(job, "start", ErrTransitionNotAllowed)
	}
	if e.board.InFlight(job.ID) {
		return entities.WorkOrder{}, ErrBusy
	}

	if confirmer == nil {
		return entities.WorkOrder{}, ErrNotConfirmed
	}
	ok, err := confirmer.Confirm(ctx, job)
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("confirm start: %w", err)
	}
	if !ok {
		e.logger.Debug("start declined", "job_id", job.ID)
		return entities.WorkOrder{}, ErrNotConfirmed
	}

	return e.transition(ctx, s, job, entities.WorkOrderStatusInProgress, "Job started")
}

// Complete moves an in_progress job (or a pending one that was already
// started) to completed.
func (e *Engine) Complete(ctx context.Context, s auth.Session, jobID string) (entities.WorkOrder, error) {
	job, err := e.lookup(jobID)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !job.CanComplete() {
		return entities.WorkOrder{}, e.refuse(job, "complete", ErrTransitionNotAllowed)
	}
	return e.transition(ctx, s, job, entities.WorkOrderStatusCompleted, "Job completed")
}

func (e *Engine) transition(ctx context.Context, s auth.Session, job entities.WorkOrder, to entities.WorkOrderStatus, done string) (entities.WorkOrder, error) {
	if !e.board.BeginMutation(job.ID) {
		return entities.WorkOrder{}, ErrBusy
	}
	defer e.board.EndMutation(job.ID)

	updated, err := e.api.MutateJob(ctx, s.Credential, job.ID, to, e.now().UTC())
	if err != nil {
		e.logger.Info("job mutation failed", "job_id", job.ID, "to", to, "error", err)
		e.notifier.Notify(notify.Error(fmt.Sprintf("Could not update %s: %s", jobLabel(job), errorText(err))))
		return entities.WorkOrder{}, fmt.Errorf("mutate job %s: %w", job.ID, err)
	}
	e.board.Upsert(updated)
	e.logger.Info("job mutated", "job_id", job.ID, "from", job.Status, "to", updated.Status)
	e.notifier.Notify(notify.Info(done + ": " + jobLabel(updated)))
	return updated, nil
}

// ReceivePayment records the payment of a completed job. The payment input is
// validated before anything is sent; the ledger is consulted so a job is never
// paid twice; the receipt file, if any, is uploaded before the receipt itself.
func (e *Engine) ReceivePayment(ctx context.Context, s auth.Session, jobID string, p Payment) (entities.CashTransaction, error) {
	job, err := e.lookup(jobID)
	if err != nil {
		return entities.CashTransaction{}, err
	}
	switch {
	case job.Status != entities.WorkOrderStatusCompleted:
		return entities.CashTransaction{}, e.refuse(job, "receive payment", ErrTransitionNotAllowed)
	case job.PayableAmount() <= 0:
		return entities.CashTransaction{}, e.refuse(job, "receive payment", ErrNothingToReceive)
	case job.Received:
		return entities.CashTransaction{}, e.refuse(job, "receive payment", ErrAlreadyReceived)
	}

	method, err := validatePayment(p)
	if err != nil {
		e.notifier.Notify(notify.Error(errorText(err)))
		return entities.CashTransaction{}, err
	}

	if !e.board.BeginMutation(job.ID) {
		return entities.CashTransaction{}, ErrBusy
	}
	defer e.board.EndMutation(job.ID)

	existing, err := e.api.ListTransactions(ctx, s.Credential, job.ID)
	if err != nil {
		e.notifier.Notify(notify.Error("Could not check the ledger: " + errorText(err)))
		return entities.CashTransaction{}, fmt.Errorf("list transactions %s: %w", job.ID, err)
	}
	if len(existing) > 0 {
		e.logger.Info("payment already in ledger", "job_id", job.ID, "transaction_id", existing[0].ID)
		return entities.CashTransaction{}, e.refuse(job, "receive payment", ErrAlreadyReceived)
	}

	receipt := backend.PaymentReceipt{PaymentMethod: method, Receipt: strings.TrimSpace(p.Receipt)}
	if p.File != nil {
		key, err := e.api.UploadReceipt(ctx, s.Credential, p.File.Filename, p.File.Data)
		if err != nil {
			e.notifier.Notify(notify.Error("Receipt upload failed: " + errorText(err)))
			return entities.CashTransaction{}, fmt.Errorf("upload receipt %s: %w", job.ID, err)
		}
		receipt.ReceiptFileKey = key
	}

	tx, updated, err := e.api.ReceivePayment(ctx, s.Credential, job.ID, receipt)
	if err != nil {
		if backend.IsConflict(err) {
			return entities.CashTransaction{}, e.refuse(job, "receive payment", fmt.Errorf("%w: %v", ErrAlreadyReceived, err))
		}
		e.notifier.Notify(notify.Error("Payment not recorded: " + errorText(err)))
		return entities.CashTransaction{}, fmt.Errorf("receive payment %s: %w", job.ID, err)
	}
	e.board.Upsert(updated)
	e.logger.Info("payment received", "job_id", job.ID, "transaction_id", tx.ID, "amount", tx.Amount, "method", tx.PaymentMethod)
	e.notifier.Notify(notify.Info(fmt.Sprintf("Payment received: R$ %.2f (%s)", tx.Amount, tx.PaymentMethod)))
	return tx, nil
}

func validatePayment(p Payment) (entities.PaymentMethod, error) {
	if strings.TrimSpace(p.Method) == "" {
		return "", ErrPaymentMethodRequired
	}
	method, ok := entities.ParsePaymentMethod(p.Method)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, p.Method)
	}
	if len(strings.TrimSpace(p.Receipt)) > entities.MaxReceiptLength {
		return "", ErrReceiptTooLong
	}
	if p.File != nil {
		if _, err := entities.DetectReceiptContentType(p.File.Data); err != nil {
			return "", err
		}
	}
	return method, nil
}

func (e *Engine) lookup(jobID string) (entities.WorkOrder, error) {
	job, ok := e.board.Get(strings.TrimSpace(jobID))
	if !ok {
		return entities.WorkOrder{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return job, nil
}

func (e *Engine) refuse(job entities.WorkOrder, command string, err error) error {
	e.logger.Debug("command refused", "job_id", job.ID, "command", command, "status", job.Status, "error", err)
	e.notifier.Notify(notify.Error(fmt.Sprintf("Cannot %s %s: %s", command, jobLabel(job), errorText(err))))
	return err
}

func jobLabel(job entities.WorkOrder) string {
	if job.Title != "" {
		return fmt.Sprintf("%q", job.Title)
	}
	return job.ID
}

func errorText(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
