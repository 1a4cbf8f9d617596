// Package backend is the console's HTTP client for the field-operations API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	request "fieldops/internal/adapter/http/dto/request"
	response "fieldops/internal/adapter/http/dto/response"
	"fieldops/internal/domain/entities"
)

const DefaultBaseURL = "http://localhost:8080/v1"

// APIError is a non-2xx answer decoded from the {code, message} error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("backend: %s (%s)", e.Message, e.Code)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// Credential is the team credential re-presented on every mutating call.
type Credential struct {
	TeamID   string
	Password string
}

// Client talks to one backend base URL (including the /v1 prefix).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ExchangeCredential validates the team credential and returns the team and its jobs.
func (c *Client) ExchangeCredential(ctx context.Context, cred Credential) (entities.Team, []entities.WorkOrder, error) {
	var out response.CredentialExchangeResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/team", nil, request.TeamCredentialRequest{
		TeamID:   cred.TeamID,
		Password: cred.Password,
	}, &out)
	if err != nil {
		return entities.Team{}, nil, err
	}
	team := entities.Team{ID: out.Team.ID, Name: out.Team.Name, LastLocation: out.Team.LastLocation}
	return team, out.Jobs, nil
}

// MutateJob moves a job to status, sending the device action time along.
func (c *Client) MutateJob(ctx context.Context, cred Credential, jobID string, status entities.WorkOrderStatus, at time.Time) (entities.WorkOrder, error) {
	body := request.JobMutationRequest{TeamID: cred.TeamID, Password: cred.Password, Status: string(status)}
	switch status {
	case entities.WorkOrderStatusInProgress:
		body.StartedAt = &at
	case entities.WorkOrderStatusCompleted:
		body.FinishedAt = &at
	}
	var job entities.WorkOrder
	if err := c.doJSON(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(jobID), nil, body, &job); err != nil {
		return entities.WorkOrder{}, err
	}
	return job, nil
}

// PaymentReceipt is the console side of a receive-payment command.
type PaymentReceipt struct {
	PaymentMethod  entities.PaymentMethod
	Receipt        string
	ReceiptFileKey string
}

func (c *Client) ReceivePayment(ctx context.Context, cred Credential, jobID string, p PaymentReceipt) (entities.CashTransaction, entities.WorkOrder, error) {
	var out response.PaymentReceiptResponse
	err := c.doJSON(ctx, http.MethodPost, "/jobs/"+url.PathEscape(jobID)+"/payment-receipt", nil, request.PaymentReceiptRequest{
		TeamID:         cred.TeamID,
		Password:       cred.Password,
		PaymentMethod:  string(p.PaymentMethod),
		Receipt:        p.Receipt,
		ReceiptFileKey: p.ReceiptFileKey,
	}, &out)
	if err != nil {
		return entities.CashTransaction{}, entities.WorkOrder{}, err
	}
	return toCashTransaction(out.Transaction), out.Job, nil
}

// ListTransactions returns the ledger entries that reference jobID.
func (c *Client) ListTransactions(ctx context.Context, cred Credential, jobID string) ([]entities.CashTransaction, error) {
	var out []response.TransactionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/"+url.PathEscape(jobID)+"/transactions", teamHeaders(cred), nil, &out); err != nil {
		return nil, err
	}
	txs := make([]entities.CashTransaction, 0, len(out))
	for _, t := range out {
		txs = append(txs, toCashTransaction(t))
	}
	return txs, nil
}

// UploadReceipt stores a receipt file and returns its key.
func (c *Client) UploadReceipt(ctx context.Context, cred Credential, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	h := teamHeaders(cred)
	h.Set("Content-Type", mw.FormDataContentType())
	var out response.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/uploads", h, &buf, &out); err != nil {
		return "", err
	}
	return out.Key, nil
}

// ReportLocation stores the device position as the team's last location.
func (c *Client) ReportLocation(ctx context.Context, cred Credential, loc entities.Location) error {
	lat, lng := loc.Latitude, loc.Longitude
	body := request.TeamLocationRequest{
		Password:  cred.Password,
		Latitude:  &lat,
		Longitude: &lng,
		Address:   loc.Address,
	}
	if !loc.CapturedAt.IsZero() {
		at := loc.CapturedAt
		body.CapturedAt = &at
	}
	return c.doJSON(ctx, http.MethodPut, "/teams/"+url.PathEscape(cred.TeamID)+"/location", nil, body, nil)
}

// StreamURL is the websocket address of the team's job push channel. The
// credential travels in StreamHeaders, never in the URL.
func (c *Client) StreamURL(teamID string) string {
	base := c.baseURL
	base = strings.Replace(base, "https://", "wss://", 1)
	base = strings.Replace(base, "http://", "ws://", 1)
	return base + "/teams/" + url.PathEscape(teamID) + "/jobs/stream"
}

// StreamHeaders are the handshake headers of the push channel.
func StreamHeaders(cred Credential) http.Header {
	return teamHeaders(cred)
}

func (c *Client) doJSON(ctx context.Context, method, path string, h http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
		if h == nil {
			h = http.Header{}
		}
		h.Set("Content-Type", "application/json")
	}
	return c.do(ctx, method, path, h, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, h http.Header, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, vs := range h {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code, apiErr.Message = e.Code, e.Message
		}
		if apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func teamHeaders(cred Credential) http.Header {
	h := http.Header{}
	h.Set("X-Team-Id", cred.TeamID)
	h.Set("X-Team-Password", cred.Password)
	return h
}

func toCashTransaction(t response.TransactionResponse) entities.CashTransaction {
	method, _ := entities.ParsePaymentMethod(t.PaymentMethod)
	return entities.CashTransaction{
		ID:             t.ID,
		JobID:          t.JobID,
		TeamID:         t.TeamID,
		Amount:         t.Amount,
		PaymentMethod:  method,
		Receipt:        t.Receipt,
		ReceiptFileKey: t.ReceiptFileKey,
		Description:    t.Description,
		CreatedAt:      t.CreatedAt,
	}
}
