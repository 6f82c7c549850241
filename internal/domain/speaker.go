package domain

import (
	"context"
	"time"
)

// Speaker is a person giving sessions. Speakers are root entities and are never updated.
type Speaker struct {
	Key       *Key
	Name      string
	CreatedAt time.Time
}

// NewSpeaker returns a speaker with a freshly generated key.
func NewSpeaker(id, name string, createdAt time.Time) *Speaker {
	return &Speaker{
		Key:       NewKey(KindSpeaker, id, nil),
		Name:      name,
		CreatedAt: createdAt,
	}
}

// SpeakerRepository defines storage for speakers.
type SpeakerRepository interface {
	Create(ctx context.Context, s *Speaker) error
	GetByKey(ctx context.Context, key *Key) (*Speaker, error)
	// GetMulti returns the speakers found, keyed by Key.Path().
	GetMulti(ctx context.Context, keys []*Key) (map[string]*Speaker, error)
}
