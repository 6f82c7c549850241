package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

type registrationStore struct {
	DB *sql.DB
}

// NewRegistrationStore returns a RegistrationStore that locks both rows inside one transaction.
func NewRegistrationStore(db *sql.DB) domain.RegistrationStore {
	return &registrationStore{DB: db}
}

func (r *registrationStore) UpdateAttendance(ctx context.Context, userID string, conferenceKey *domain.Key, fn func(*domain.Profile, *domain.Conference) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	p, err := scanProfile(tx.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		return txError("lock profile", err)
	}
	c, err := scanConference(tx.QueryRowContext(ctx,
		`SELECT `+conferenceColumns+` FROM conferences WHERE websafe_key = $1 FOR UPDATE`, conferenceKey.Encode()))
	if err != nil {
		return txError("lock conference", err)
	}

	if err := fn(p, c); err != nil {
		return err
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE profiles
		SET conference_keys_to_attend = $1, updated_at = $2, version = version + 1
		WHERE user_id = $3
	`, pq.Array(p.ConferenceKeysToAttend), now, p.UserID); err != nil {
		return txError("update profile", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE conferences
		SET seats_available = $1, updated_at = $2, version = version + 1
		WHERE websafe_key = $3
	`, c.SeatsAvailable, now, conferenceKey.Encode()); err != nil {
		return txError("update conference", err)
	}

	if err := tx.Commit(); err != nil {
		return txError("commit", err)
	}
	committed = true
	return nil
}

func txError(step string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return err
	case isTxConflict(err):
		return fmt.Errorf("%s: %w", step, domain.ErrConcurrentUpdate)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w: there are no seats available", step, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", step, err)
}
