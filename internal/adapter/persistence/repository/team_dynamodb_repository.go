package repository

import (
	"context"
	"errors"

	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTeamsTableName = "teams"

type locationItem struct {
	Latitude   float64 `dynamodbav:"latitude"`
	Longitude  float64 `dynamodbav:"longitude"`
	Address    string  `dynamodbav:"address,omitempty"`
	CapturedAt string  `dynamodbav:"captured_at"`
}

type teamItem struct {
	ID           string        `dynamodbav:"id"`
	Name         string        `dynamodbav:"name"`
	PasswordHash string        `dynamodbav:"password_hash"`
	LastLocation *locationItem `dynamodbav:"last_location,omitempty"`
}

// TeamDynamoRepository persists Team entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Teams are provisioned by the back office; this service only reads them and
// records the last device location.

type TeamDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITeamRepository = (*TeamDynamoRepository)(nil)

func NewTeamDynamoRepository(ddb *dynamodb.Client) *TeamDynamoRepository {
	return &TeamDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TEAMS_TABLE", defaultTeamsTableName),
	}
}

func (r *TeamDynamoRepository) GetByID(ctx context.Context, id string) (entities.Team, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Team{}, err
	}
	if len(out.Item) == 0 {
		return entities.Team{}, nil
	}

	var it teamItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Team{}, err
	}
	return fromTeamItem(it), nil
}

func (r *TeamDynamoRepository) UpdateLastLocation(ctx context.Context, id string, loc entities.Location) (entities.Team, error) {
	av, err := attributevalue.Marshal(toLocationItem(loc))
	if err != nil {
		return entities.Team{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #loc = :loc"),
		ExpressionAttributeNames: map[string]string{
			"#id":  "id",
			"#loc": "last_location",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":loc": av,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Team{}, nil
		}
		return entities.Team{}, err
	}

	var it teamItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Team{}, err
	}
	return fromTeamItem(it), nil
}

func toLocationItem(loc entities.Location) locationItem {
	return locationItem{
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		Address:    loc.Address,
		CapturedAt: formatTime(loc.CapturedAt),
	}
}

func fromTeamItem(it teamItem) entities.Team {
	t := entities.Team{
		ID:           it.ID,
		Name:         it.Name,
		PasswordHash: it.PasswordHash,
	}
	if it.LastLocation != nil {
		t.LastLocation = &entities.Location{
			Latitude:   it.LastLocation.Latitude,
			Longitude:  it.LastLocation.Longitude,
			Address:    it.LastLocation.Address,
			CapturedAt: parseTime(it.LastLocation.CapturedAt),
		}
	}
	return t
}
