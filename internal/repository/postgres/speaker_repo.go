package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func scanSpeaker(row rowScanner) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	var key string
	if err := row.Scan(&key, &s.Name, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var err error
	if s.Key, err = domain.DecodeKey(key); err != nil {
		return nil, fmt.Errorf("stored speaker key %q: %w", key, err)
	}
	return s, nil
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `INSERT INTO speakers (websafe_key, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.DB.ExecContext(ctx, query, s.Key.Encode(), s.Name, s.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: speaker already exists", domain.ErrConflict)
	}
	return err
}

func (r *speakerRepository) GetByKey(ctx context.Context, key *domain.Key) (*domain.Speaker, error) {
	query := `SELECT websafe_key, name, created_at FROM speakers WHERE websafe_key = $1`
	return scanSpeaker(r.DB.QueryRowContext(ctx, query, key.Encode()))
}

func (r *speakerRepository) GetMulti(ctx context.Context, keys []*domain.Key) (map[string]*domain.Speaker, error) {
	out := make(map[string]*domain.Speaker, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	encoded := make([]string, len(keys))
	for i, k := range keys {
		encoded[i] = k.Encode()
	}
	query := `SELECT websafe_key, name, created_at FROM speakers WHERE websafe_key = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(encoded))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		out[s.Key.Path()] = s
	}
	return out, rows.Err()
}
