package dynamo

import (
	"context"
	"errors"
	"slices"

	"conferencecentral/internal/domain"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type conferenceRepository struct {
	table
}

func NewConferenceRepository(client Client, tableName string) domain.ConferenceRepository {
	return &conferenceRepository{table{client: client, name: tableName}}
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	return r.create(ctx, newConferenceItem(c))
}

func (r *conferenceRepository) GetByKey(ctx context.Context, key *domain.Key) (*domain.Conference, error) {
	var it conferenceItem
	if err := r.get(ctx, key, false, &it); err != nil {
		return nil, err
	}
	return it.toDomain()
}

func (r *conferenceRepository) GetMulti(ctx context.Context, keys []*domain.Key) ([]*domain.Conference, error) {
	out := make([]*domain.Conference, 0, len(keys))
	for _, k := range keys {
		c, err := r.GetByKey(ctx, k)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *conferenceRepository) Update(ctx context.Context, c *domain.Conference) error {
	expected := c.Version
	it := newConferenceItem(c)
	it.Version = expected + 1
	if err := r.replace(ctx, it, expected); err != nil {
		return err
	}
	c.Version = it.Version
	return nil
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	parent := domain.ProfileKey(organizerUserID)
	items, err := r.children(ctx, parent, parent.Path()+"/"+domain.KindConference+"/")
	if err != nil {
		return nil, err
	}
	confs, err := unmarshalConferences(items)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(confs, func(a, b *domain.Conference) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return confs, nil
}

// Query scans all conferences and filters them in process.
func (r *conferenceRepository) Query(ctx context.Context, q *domain.ConferenceQuery) ([]*domain.Conference, error) {
	items, err := r.scanKind(ctx, domain.KindConference)
	if err != nil {
		return nil, err
	}
	all, err := unmarshalConferences(items)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Conference, 0, len(all))
	for _, c := range all {
		if q.Matches(c) {
			out = append(out, c)
		}
	}
	q.Sort(out)
	return out, nil
}

func unmarshalConferences(items []map[string]types.AttributeValue) ([]*domain.Conference, error) {
	var raw []conferenceItem
	if err := attributevalue.UnmarshalListOfMaps(items, &raw); err != nil {
		return nil, err
	}
	out := make([]*domain.Conference, 0, len(raw))
	for _, it := range raw {
		c, err := it.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
