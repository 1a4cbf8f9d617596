package database

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoSettings describes how the backend reaches its tables.
//
// Supported env vars (local-friendly):
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
//   - DYNAMODB_MAX_ATTEMPTS (default: 5)
type DynamoSettings struct {
	Region      string
	AccessKey   string
	SecretKey   string
	Endpoint    string
	MaxAttempts int
	MaxBackoff  time.Duration
}

func DynamoSettingsFromEnv() DynamoSettings {
	return DynamoSettings{
		Region:      getenvDefault("AWS_REGION", "us-east-1"),
		AccessKey:   getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		SecretKey:   getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		Endpoint:    os.Getenv("DYNAMODB_ENDPOINT"),
		MaxAttempts: getenvInt("DYNAMODB_MAX_ATTEMPTS", 5),
		MaxBackoff:  2 * time.Second,
	}
}

// ConnectDynamoDB builds the client used by the work order, team, ledger and
// receipt file repositories. Configuration errors are fatal at startup.
func ConnectDynamoDB() *dynamodb.Client {
	s := DynamoSettingsFromEnv()
	client, err := NewDynamoDBClient(context.Background(), s)
	if err != nil {
		log.Fatalf("failed to create dynamodb client: %v", err)
	}
	log.Printf("[database][dynamodb] client ready region=%s endpoint=%q max_attempts=%d", s.Region, s.Endpoint, s.MaxAttempts)
	return client
}

func NewDynamoDBClient(ctx context.Context, s DynamoSettings) (*dynamodb.Client, error) {
	cfg, err := loadAWSConfig(ctx, s)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
	}), nil
}

func loadAWSConfig(ctx context.Context, s DynamoSettings) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, "")

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(creds),
		// ConditionalCheckFailed is never retried by the standard retryer.
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				if s.MaxAttempts > 0 {
					o.MaxAttempts = s.MaxAttempts
				}
				if s.MaxBackoff > 0 {
					o.MaxBackoff = s.MaxBackoff
				}
			})
		}),
	)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[database][dynamodb] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
