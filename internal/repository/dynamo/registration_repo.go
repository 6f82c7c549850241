package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type registrationStore struct {
	table
}

// NewRegistrationStore returns a RegistrationStore that writes both items in one conditional transaction.
func NewRegistrationStore(client Client, tableName string) domain.RegistrationStore {
	return &registrationStore{table{client: client, name: tableName}}
}

func (r *registrationStore) UpdateAttendance(ctx context.Context, userID string, conferenceKey *domain.Key, fn func(*domain.Profile, *domain.Conference) error) error {
	var pi profileItem
	if err := r.get(ctx, domain.ProfileKey(userID), true, &pi); err != nil {
		return err
	}
	var ci conferenceItem
	if err := r.get(ctx, conferenceKey, true, &ci); err != nil {
		return err
	}
	p := pi.toDomain()
	c, err := ci.toDomain()
	if err != nil {
		return err
	}

	if err := fn(p, c); err != nil {
		return err
	}

	now := time.Now()
	p.UpdatedAt, c.UpdatedAt = now, now
	profilePut, err := r.versionedPut(newProfileItem(p), p.Version)
	if err != nil {
		return err
	}
	conferencePut, err := r.versionedPut(newConferenceItem(c), c.Version)
	if err != nil {
		return err
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{{Put: profilePut}, {Put: conferencePut}},
	})
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		return fmt.Errorf("attendance transaction: %w", domain.ErrConcurrentUpdate)
	}
	if err != nil {
		return err
	}
	p.Version++
	c.Version++
	return nil
}

// versionedPut builds a Put of item that only succeeds while the stored version equals expected.
// item must carry the version field; it is bumped here.
func (r *registrationStore) versionedPut(item any, expected int64) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	av[attrVersion] = &types.AttributeValueMemberN{Value: fmt.Sprint(expected + 1)}
	cond, names, values := versionCondition(expected)
	return &types.Put{
		TableName:                 aws.String(r.name),
		Item:                      av,
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}, nil
}
