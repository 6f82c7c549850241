// Package dynamo stores conference data in a single DynamoDB table.
//
// Every item is addressed by its ancestor path: PK holds the parent's path (or the item's own path
// for root entities) and SK the item's own path, so children of an entity share a partition and can
// be read with one Query.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is the subset of the DynamoDB API used by the repositories.
type Client interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// ClientConfig holds connection settings. Empty credentials fall back to the default AWS chain.
type ClientConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// NewClient builds a DynamoDB client from cfg.
func NewClient(ctx context.Context, cfg ClientConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// TableAdmin is the subset of the DynamoDB API needed to provision the table.
type TableAdmin interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTable creates the table (PK/SK, on-demand billing) if it does not exist and waits until it is active.
func EnsureTable(ctx context.Context, admin TableAdmin, name string) error {
	_, err := admin.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table: %w", err)
	}
	_, err = admin.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrPK), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(attrSK), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrPK), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(attrSK), KeyType: types.KeyTypeRange},
		},
	})
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	waiter := dynamodb.NewTableExistsWaiter(admin)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, tableWaitTimeout)
}

const (
	attrPK      = "PK"
	attrSK      = "SK"
	attrKind    = "kind"
	attrVersion = "version"

	tableWaitTimeout = 2 * time.Minute

	condNotExists = "attribute_not_exists(PK)"
	condVersion   = "attribute_exists(PK) AND #v = :expected"
)

type table struct {
	client Client
	name   string
}

func partitionKey(k *domain.Key) string {
	if k.Parent == nil {
		return k.Path()
	}
	return k.Parent.Path()
}

func itemKey(k *domain.Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: partitionKey(k)},
		attrSK: &types.AttributeValueMemberS{Value: k.Path()},
	}
}

func versionCondition(expected int64) (string, map[string]string, map[string]types.AttributeValue) {
	return condVersion,
		map[string]string{"#v": attrVersion},
		map[string]types.AttributeValue{":expected": &types.AttributeValueMemberN{Value: fmt.Sprint(expected)}}
}

// get loads one item into out. It returns domain.ErrNotFound when the item is absent.
func (t table) get(ctx context.Context, k *domain.Key, consistent bool, out any) error {
	res, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            itemKey(k),
		ConsistentRead: aws.Bool(consistent),
	})
	if err != nil {
		return err
	}
	if len(res.Item) == 0 {
		return domain.ErrNotFound
	}
	return attributevalue.UnmarshalMap(res.Item, out)
}

// create writes item only if no item with the same key exists.
func (t table) create(ctx context.Context, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.name),
		Item:                av,
		ConditionExpression: aws.String(condNotExists),
	})
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return fmt.Errorf("%w: item already exists", domain.ErrConflict)
	}
	return err
}

// replace writes item if the stored version still equals expected.
func (t table) replace(ctx context.Context, item any, expected int64) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	cond, names, values := versionCondition(expected)
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(t.name),
		Item:                      av,
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return domain.ErrConcurrentUpdate
	}
	return err
}

// children returns all items in the parent's partition whose sort key starts with prefix.
func (t table) children(ctx context.Context, parent *domain.Key, prefix string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewQueryPaginator(t.client, &dynamodb.QueryInput{
		TableName:              aws.String(t.name),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: parent.Path()},
			":prefix": &types.AttributeValueMemberS{Value: prefix},
		},
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// scanKind returns every item of the given kind.
func (t table) scanKind(ctx context.Context, kind string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewScanPaginator(t.client, &dynamodb.ScanInput{
		TableName:                aws.String(t.name),
		FilterExpression:         aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{"#kind": attrKind},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: kind},
		},
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
