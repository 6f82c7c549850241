package dynamo

import (
	"context"
	"errors"

	"conferencecentral/internal/domain"
)

type profileRepository struct {
	table
}

func NewProfileRepository(client Client, tableName string) domain.ProfileRepository {
	return &profileRepository{table{client: client, name: tableName}}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	return r.create(ctx, newProfileItem(p))
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var it profileItem
	if err := r.get(ctx, domain.ProfileKey(userID), false, &it); err != nil {
		return nil, err
	}
	return it.toDomain(), nil
}

func (r *profileRepository) GetMulti(ctx context.Context, userIDs []string) (map[string]*domain.Profile, error) {
	out := make(map[string]*domain.Profile, len(userIDs))
	for _, id := range userIDs {
		p, err := r.GetByUserID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	expected := p.Version
	it := newProfileItem(p)
	it.Version = expected + 1
	if err := r.replace(ctx, it, expected); err != nil {
		return err
	}
	p.Version = it.Version
	return nil
}
