package dynamo

import (
	"context"
	"errors"

	"conferencecentral/internal/domain"
)

type speakerRepository struct {
	table
}

func NewSpeakerRepository(client Client, tableName string) domain.SpeakerRepository {
	return &speakerRepository{table{client: client, name: tableName}}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	return r.create(ctx, newSpeakerItem(s))
}

func (r *speakerRepository) GetByKey(ctx context.Context, key *domain.Key) (*domain.Speaker, error) {
	var it speakerItem
	if err := r.get(ctx, key, false, &it); err != nil {
		return nil, err
	}
	return it.toDomain()
}

func (r *speakerRepository) GetMulti(ctx context.Context, keys []*domain.Key) (map[string]*domain.Speaker, error) {
	out := make(map[string]*domain.Speaker, len(keys))
	for _, k := range keys {
		s, err := r.GetByKey(ctx, k)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[k.Path()] = s
	}
	return out, nil
}
