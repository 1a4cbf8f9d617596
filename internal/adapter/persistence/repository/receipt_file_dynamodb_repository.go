package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultReceiptFilesTableName = "receipt_files"
	receiptChunkSize             = 300 << 10
	maxBatchAttempts             = 5
)

var ErrReceiptFileIncomplete = errors.New("receipt file chunks incomplete")

type receiptManifestItem struct {
	ID          string `dynamodbav:"id"`
	Filename    string `dynamodbav:"filename,omitempty"`
	ContentType string `dynamodbav:"content_type"`
	Size        int64  `dynamodbav:"size"`
	Chunks      int    `dynamodbav:"chunks"`
	UploadedAt  string `dynamodbav:"uploaded_at"`
}

type receiptChunkItem struct {
	ID      string `dynamodbav:"id"`
	ChunkOf string `dynamodbav:"chunk_of"`
	Seq     int    `dynamodbav:"seq"`
	Data    []byte `dynamodbav:"data"`
}

// ReceiptFileDynamoRepository stores receipt files in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// A file is one manifest item (id = key) plus chunk items (id = key#n) of at most
// 300 KiB each, which keeps every item under the 400 KB DynamoDB limit. With the
// 5 MiB upload cap a file fits in a single BatchWriteItem call (25 items).

type ReceiptFileDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IReceiptFileRepository = (*ReceiptFileDynamoRepository)(nil)

func NewReceiptFileDynamoRepository(ddb *dynamodb.Client) *ReceiptFileDynamoRepository {
	return &ReceiptFileDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("RECEIPT_FILES_TABLE", defaultReceiptFilesTableName),
	}
}

func (r *ReceiptFileDynamoRepository) Put(ctx context.Context, f entities.ReceiptFile) error {
	chunks := splitChunks(f.Data, receiptChunkSize)
	manifest := receiptManifestItem{
		ID:          f.Key,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        int64(len(f.Data)),
		Chunks:      len(chunks),
		UploadedAt:  formatTime(f.UploadedAt),
	}

	requests := make([]types.WriteRequest, 0, len(chunks)+1)
	for i, c := range chunks {
		av, err := attributevalue.MarshalMap(receiptChunkItem{ID: chunkID(f.Key, i), ChunkOf: f.Key, Seq: i, Data: c})
		if err != nil {
			return err
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}
	// Manifest last: a reader never sees a manifest whose chunks are missing.
	av, err := attributevalue.MarshalMap(manifest)
	if err != nil {
		return err
	}

	if err := r.batchWrite(ctx, requests); err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

func (r *ReceiptFileDynamoRepository) Get(ctx context.Context, key string) (entities.ReceiptFile, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ReceiptFile{}, err
	}
	if len(out.Item) == 0 {
		return entities.ReceiptFile{}, nil
	}
	var m receiptManifestItem
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return entities.ReceiptFile{}, err
	}

	data, err := r.readChunks(ctx, m)
	if err != nil {
		return entities.ReceiptFile{}, err
	}
	return entities.ReceiptFile{
		Key:         m.ID,
		Filename:    m.Filename,
		ContentType: m.ContentType,
		Size:        m.Size,
		Data:        data,
		UploadedAt:  parseTime(m.UploadedAt),
	}, nil
}

func (r *ReceiptFileDynamoRepository) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{r.tableName: requests}
	for attempt := 0; attempt < maxBatchAttempts; attempt++ {
		out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems[r.tableName]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
		if err := sleepCtx(ctx, time.Duration(attempt+1)*100*time.Millisecond); err != nil {
			return err
		}
	}
	return fmt.Errorf("receipt file write: %w", ErrReceiptFileIncomplete)
}

func (r *ReceiptFileDynamoRepository) readChunks(ctx context.Context, m receiptManifestItem) ([]byte, error) {
	keys := make([]map[string]types.AttributeValue, 0, m.Chunks)
	for i := 0; i < m.Chunks; i++ {
		keys = append(keys, map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: chunkID(m.ID, i)},
		})
	}

	parts := make([][]byte, m.Chunks)
	pending := map[string]types.KeysAndAttributes{
		r.tableName: {Keys: keys, ConsistentRead: aws.Bool(true)},
	}
	for attempt := 0; attempt < maxBatchAttempts && len(pending[r.tableName].Keys) > 0; attempt++ {
		out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Responses[r.tableName] {
			var c receiptChunkItem
			if err := attributevalue.UnmarshalMap(raw, &c); err != nil {
				return nil, err
			}
			if c.Seq >= 0 && c.Seq < len(parts) {
				parts[c.Seq] = c.Data
			}
		}
		pending = out.UnprocessedKeys
		if len(pending[r.tableName].Keys) > 0 {
			if err := sleepCtx(ctx, time.Duration(attempt+1)*100*time.Millisecond); err != nil {
				return nil, err
			}
		}
	}

	data := make([]byte, 0, m.Size)
	for i, p := range parts {
		if p == nil {
			return nil, fmt.Errorf("receipt file %s chunk %d: %w", m.ID, i, ErrReceiptFileIncomplete)
		}
		data = append(data, p...)
	}
	return data, nil
}

func splitChunks(data []byte, size int) [][]byte {
	chunks := make([][]byte, 0, len(data)/size+1)
	for len(data) > size {
		chunks = append(chunks, data[:size])
		data = data[size:]
	}
	return append(chunks, data)
}

func chunkID(key string, seq int) string {
	return key + "#" + strconv.Itoa(seq)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
