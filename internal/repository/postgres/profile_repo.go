package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

const profileColumns = `user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend,
		session_keys_wishlist, version, created_at, updated_at`

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var (
		size              string
		attending, wishes pq.StringArray
	)
	err := row.Scan(&p.UserID, &p.DisplayName, &p.MainEmail, &size, &attending, &wishes, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.TeeShirtSize = domain.TeeShirtSize(size)
	p.ConferenceKeysToAttend = append([]string{}, attending...)
	p.SessionKeysWishlist = append([]string{}, wishes...)
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query, p.UserID, p.DisplayName, p.MainEmail, string(p.TeeShirtSize),
		pq.Array(p.ConferenceKeysToAttend), pq.Array(p.SessionKeysWishlist), p.Version, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: profile already exists", domain.ErrConflict)
	}
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *profileRepository) GetMulti(ctx context.Context, userIDs []string) (map[string]*domain.Profile, error) {
	out := make(map[string]*domain.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out[p.UserID] = p
	}
	return out, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, main_email = $2, tee_shirt_size = $3, conference_keys_to_attend = $4,
			session_keys_wishlist = $5, updated_at = $6, version = version + 1
		WHERE user_id = $7 AND version = $8
	`
	res, err := r.DB.ExecContext(ctx, query, p.DisplayName, p.MainEmail, string(p.TeeShirtSize),
		pq.Array(p.ConferenceKeysToAttend), pq.Array(p.SessionKeysWishlist), p.UpdatedAt, p.UserID, p.Version)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrentUpdate
	}
	p.Version++
	return nil
}
