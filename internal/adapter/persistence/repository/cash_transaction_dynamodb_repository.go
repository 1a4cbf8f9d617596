package repository

import (
	"context"
	"errors"
	"time"

	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCashTransactionsTableName = "cash_transactions"
	cashTransactionsJobIDIndex       = "job_id-index"
)

type cashTransactionItem struct {
	ID                 string                 `dynamodbav:"id"`
	JobID              string                 `dynamodbav:"job_id"`
	TeamID             string                 `dynamodbav:"team_id"`
	Amount             float64                `dynamodbav:"amount"`
	PaymentMethod      string                 `dynamodbav:"payment_method"`
	Receipt            string                 `dynamodbav:"receipt,omitempty"`
	ReceiptFileKey     string                 `dynamodbav:"receipt_file_key,omitempty"`
	Description        string                 `dynamodbav:"description,omitempty"`
	CreatedAt          string                 `dynamodbav:"created_at"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// CashTransactionDynamoRepository persists CashTransaction entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_id-index (PK: job_id)
//
// The transaction put and the job "received" flag are written in one
// TransactWriteItems call, so the ledger and the flag never disagree.

type CashTransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
	jobsTable string
}

var _ interfaces.ICashTransactionRepository = (*CashTransactionDynamoRepository)(nil)

func NewCashTransactionDynamoRepository(ddb *dynamodb.Client) *CashTransactionDynamoRepository {
	return &CashTransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CASH_TRANSACTIONS_TABLE", defaultCashTransactionsTableName),
		jobsTable: jobsTableName(),
	}
}

func (r *CashTransactionDynamoRepository) CreateForJob(ctx context.Context, t entities.CashTransaction) (bool, error) {
	av, err := attributevalue.MarshalMap(toCashTransactionItem(t))
	if err != nil {
		return false, err
	}
	receivedAt := t.CreatedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	now := formatTime(receivedAt)

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(r.jobsTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: t.JobID},
					},
					ConditionExpression: aws.String("attribute_exists(#id) AND #status = :completed AND (attribute_not_exists(#received) OR #received = :false)"),
					UpdateExpression:    aws.String("SET #received = :true, #received_at = :received_at, #receipt = :receipt, #receipt_file_key = :receipt_file_key, #updated_at = :received_at"),
					ExpressionAttributeNames: map[string]string{
						"#id":               "id",
						"#status":           "status",
						"#received":         "received",
						"#received_at":      "received_at",
						"#receipt":          "receipt",
						"#receipt_file_key": "receipt_file_key",
						"#updated_at":       "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed":        &types.AttributeValueMemberS{Value: string(entities.WorkOrderStatusCompleted)},
						":true":             &types.AttributeValueMemberBOOL{Value: true},
						":false":            &types.AttributeValueMemberBOOL{Value: false},
						":received_at":      &types.AttributeValueMemberS{Value: now},
						":receipt":          &types.AttributeValueMemberS{Value: t.Receipt},
						":receipt_file_key": &types.AttributeValueMemberS{Value: t.ReceiptFileKey},
					},
				},
			},
		},
	})
	if err != nil {
		if isConditionalCancel(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *CashTransactionDynamoRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.CashTransaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(cashTransactionsJobIDIndex),
		KeyConditionExpression: aws.String("job_id = :jid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":jid": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.CashTransaction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it cashTransactionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromCashTransactionItem(it))
	}
	return items, nil
}

// isConditionalCancel reports whether a transaction was cancelled only because
// one of its conditions failed.
func isConditionalCancel(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	conditional := false
	for _, reason := range tce.CancellationReasons {
		code := aws.ToString(reason.Code)
		switch code {
		case "", "None":
			continue
		case "ConditionalCheckFailed":
			conditional = true
		default:
			return false
		}
	}
	return conditional
}

func toCashTransactionItem(t entities.CashTransaction) cashTransactionItem {
	return cashTransactionItem{
		ID:                 t.ID,
		JobID:              t.JobID,
		TeamID:             t.TeamID,
		Amount:             t.Amount,
		PaymentMethod:      string(t.PaymentMethod),
		Receipt:            t.Receipt,
		ReceiptFileKey:     t.ReceiptFileKey,
		Description:        t.Description,
		CreatedAt:          formatTime(t.CreatedAt),
		ProviderPayload:    t.ProviderPayload,
		ProviderPayloadRaw: string(t.ProviderPayloadRaw),
	}
}

func fromCashTransactionItem(it cashTransactionItem) entities.CashTransaction {
	return entities.CashTransaction{
		ID:                 it.ID,
		JobID:              it.JobID,
		TeamID:             it.TeamID,
		Amount:             it.Amount,
		PaymentMethod:      entities.PaymentMethod(it.PaymentMethod),
		Receipt:            it.Receipt,
		ReceiptFileKey:     it.ReceiptFileKey,
		Description:        it.Description,
		CreatedAt:          parseTime(it.CreatedAt),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
