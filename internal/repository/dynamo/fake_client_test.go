package dynamo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory table understanding the handful of expressions the repositories issue.
type fakeClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue

	// beforeTransact runs before a transaction is evaluated; tests use it to simulate a racing writer.
	beforeTransact func()
	transactCalls  int
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: map[string]map[string]types.AttributeValue{}}
}

func str(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

func storageKey(item map[string]types.AttributeValue) string {
	return str(item[attrPK]) + "|" + str(item[attrSK])
}

func (f *fakeClient) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[storageKey(in.Key)]}, nil
}

func (f *fakeClient) conditionHolds(item map[string]types.AttributeValue, cond *string, values map[string]types.AttributeValue) bool {
	existing, ok := f.items[storageKey(item)]
	switch aws.ToString(cond) {
	case condNotExists:
		return !ok
	case condVersion:
		return ok && str(existing[attrVersion]) == str(values[":expected"])
	}
	return true
}

func (f *fakeClient) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.conditionHolds(in.Item, in.ConditionExpression, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}
	f.items[storageKey(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeClient) sorted(match func(map[string]types.AttributeValue) bool) []map[string]types.AttributeValue {
	var out []map[string]types.AttributeValue
	for _, it := range f.items {
		if match(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return storageKey(out[i]) < storageKey(out[j]) })
	return out
}

func (f *fakeClient) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pk, prefix := str(in.ExpressionAttributeValues[":pk"]), str(in.ExpressionAttributeValues[":prefix"])
	items := f.sorted(func(it map[string]types.AttributeValue) bool {
		return str(it[attrPK]) == pk && strings.HasPrefix(str(it[attrSK]), prefix)
	})
	return &dynamodb.QueryOutput{Items: items, Count: int32(len(items))}, nil
}

func (f *fakeClient) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kind := str(in.ExpressionAttributeValues[":kind"])
	items := f.sorted(func(it map[string]types.AttributeValue) bool { return str(it[attrKind]) == kind })
	return &dynamodb.ScanOutput{Items: items, Count: int32(len(items))}, nil
}

func (f *fakeClient) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	if f.beforeTransact != nil {
		f.beforeTransact()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactCalls++
	for _, ti := range in.TransactItems {
		if !f.conditionHolds(ti.Put.Item, ti.Put.ConditionExpression, ti.Put.ExpressionAttributeValues) {
			return nil, &types.TransactionCanceledException{Message: aws.String("transaction cancelled")}
		}
	}
	for _, ti := range in.TransactItems {
		f.items[storageKey(ti.Put.Item)] = ti.Put.Item
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

type fakeAdmin struct {
	exists  bool
	created *dynamodb.CreateTableInput
}

func (a *fakeAdmin) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if !a.exists {
		return nil, &types.ResourceNotFoundException{Message: aws.String("no table")}
	}
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   in.TableName,
		TableStatus: types.TableStatusActive,
	}}, nil
}

func (a *fakeAdmin) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	a.created = in
	a.exists = true
	return &dynamodb.CreateTableOutput{}, nil
}
