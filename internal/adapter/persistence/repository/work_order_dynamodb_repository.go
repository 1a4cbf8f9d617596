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
	defaultJobsTableName = "jobs"
	jobsTeamIDIndex      = "team_id-index"
)

type serviceItemItem struct {
	ServiceType      string   `dynamodbav:"service_type"`
	SiteType         string   `dynamodbav:"site_type"`
	SoilType         string   `dynamodbav:"soil_type"`
	AccessDifficulty string   `dynamodbav:"access_difficulty"`
	StakeDiameterCM  *float64 `dynamodbav:"stake_diameter_cm,omitempty"`
	StakeDepthM      *float64 `dynamodbav:"stake_depth_m,omitempty"`
	DiagnosticRef    string   `dynamodbav:"diagnostic_ref,omitempty"`
}

type workOrderItem struct {
	ID              string            `dynamodbav:"id"`
	TeamID          string            `dynamodbav:"team_id"`
	Title           string            `dynamodbav:"title"`
	Status          string            `dynamodbav:"status"`
	ClientName      string            `dynamodbav:"client_name"`
	Address         string            `dynamodbav:"address"`
	Latitude        *float64          `dynamodbav:"latitude,omitempty"`
	Longitude       *float64          `dynamodbav:"longitude,omitempty"`
	PlannedDate     string            `dynamodbav:"planned_date"`
	StartedAt       string            `dynamodbav:"started_at,omitempty"`
	FinishedAt      string            `dynamodbav:"finished_at,omitempty"`
	Services        []serviceItemItem `dynamodbav:"services,omitempty"`
	Notes           string            `dynamodbav:"notes,omitempty"`
	Value           float64           `dynamodbav:"value"`
	FinalValue      float64           `dynamodbav:"final_value"`
	Received        bool              `dynamodbav:"received"`
	ReceivedAt      string            `dynamodbav:"received_at,omitempty"`
	Receipt         string            `dynamodbav:"receipt,omitempty"`
	ReceiptFileKey  string            `dynamodbav:"receipt_file_key,omitempty"`
	ClientSignature string            `dynamodbav:"client_signature,omitempty"`
	ClientSignedAt  string            `dynamodbav:"client_signed_at,omitempty"`
	UpdatedAt       string            `dynamodbav:"updated_at"`
}

// WorkOrderDynamoRepository persists WorkOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: team_id-index (PK: team_id)

type WorkOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb *dynamodb.Client) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{
		ddb:       ddb,
		tableName: jobsTableName(),
	}
}

func jobsTableName() string {
	return getenvDefault("JOBS_TABLE", defaultJobsTableName)
}

func (r *WorkOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) ListByTeamID(ctx context.Context, teamID string) ([]entities.WorkOrder, error) {
	items := make([]entities.WorkOrder, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(jobsTeamIDIndex),
			KeyConditionExpression: aws.String("team_id = :tid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":tid": &types.AttributeValueMemberS{Value: teamID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it workOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromWorkOrderItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *WorkOrderDynamoRepository) UpdateStatus(ctx context.Context, id string, upd interfaces.StatusUpdate) (entities.WorkOrder, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #status = :to, #updated_at = :updated_at"
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	vals := map[string]types.AttributeValue{
		":to":         &types.AttributeValueMemberS{Value: string(upd.To)},
		":from":       &types.AttributeValueMemberS{Value: string(upd.From)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	if upd.StartedAt != nil {
		expr += ", #started_at = :started_at"
		names["#started_at"] = "started_at"
		vals[":started_at"] = &types.AttributeValueMemberS{Value: formatTime(*upd.StartedAt)}
	}
	if upd.FinishedAt != nil {
		expr += ", #finished_at = :finished_at"
		names["#finished_at"] = "finished_at"
		vals[":finished_at"] = &types.AttributeValueMemberS{Value: formatTime(*upd.FinishedAt)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.WorkOrder{}, nil
		}
		return entities.WorkOrder{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.WorkOrder{}, nil
	}
	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	services := make([]entities.ServiceItem, 0, len(it.Services))
	for _, s := range it.Services {
		services = append(services, entities.ServiceItem(s))
	}
	return entities.WorkOrder{
		ID:              it.ID,
		TeamID:          it.TeamID,
		Title:           it.Title,
		Status:          entities.WorkOrderStatus(it.Status),
		ClientName:      it.ClientName,
		Address:         it.Address,
		Latitude:        it.Latitude,
		Longitude:       it.Longitude,
		PlannedDate:     parseTime(it.PlannedDate),
		StartedAt:       parseTimePtr(it.StartedAt),
		FinishedAt:      parseTimePtr(it.FinishedAt),
		Services:        services,
		Notes:           it.Notes,
		Value:           it.Value,
		FinalValue:      it.FinalValue,
		Received:        it.Received,
		ReceivedAt:      parseTimePtr(it.ReceivedAt),
		Receipt:         it.Receipt,
		ReceiptFileKey:  it.ReceiptFileKey,
		ClientSignature: it.ClientSignature,
		ClientSignedAt:  parseTimePtr(it.ClientSignedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
