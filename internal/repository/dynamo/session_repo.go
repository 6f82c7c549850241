package dynamo

import (
	"context"
	"errors"

	"conferencecentral/internal/domain"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type sessionRepository struct {
	table
}

func NewSessionRepository(client Client, tableName string) domain.SessionRepository {
	return &sessionRepository{table{client: client, name: tableName}}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	return r.create(ctx, newSessionItem(s))
}

func (r *sessionRepository) GetByKey(ctx context.Context, key *domain.Key) (*domain.Session, error) {
	var it sessionItem
	if err := r.get(ctx, key, false, &it); err != nil {
		return nil, err
	}
	return it.toDomain()
}

func (r *sessionRepository) GetMulti(ctx context.Context, keys []*domain.Key) ([]*domain.Session, error) {
	out := make([]*domain.Session, 0, len(keys))
	for _, k := range keys {
		s, err := r.GetByKey(ctx, k)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// List queries the conference partition when the filter names a conference and scans otherwise.
func (r *sessionRepository) List(ctx context.Context, f domain.SessionFilter) ([]*domain.Session, error) {
	var (
		items []map[string]types.AttributeValue
		err   error
	)
	if f.ConferenceKey != nil {
		items, err = r.children(ctx, f.ConferenceKey, f.ConferenceKey.Path()+"/"+domain.KindSession+"/")
	} else {
		items, err = r.scanKind(ctx, domain.KindSession)
	}
	if err != nil {
		return nil, err
	}

	var raw []sessionItem
	if err := attributevalue.UnmarshalListOfMaps(items, &raw); err != nil {
		return nil, err
	}
	out := make([]*domain.Session, 0, len(raw))
	for _, it := range raw {
		s, err := it.toDomain()
		if err != nil {
			return nil, err
		}
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	f.Sort(out)
	return out, nil
}
