package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

const sessionColumns = `websafe_key, speaker_key, name, highlights, duration_minutes, type_of_session,
		session_date, start_minutes, created_at`

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func scanSession(row rowScanner) (*domain.Session, error) {
	s := &domain.Session{}
	var (
		key, speakerKey string
		start           int
	)
	err := row.Scan(&key, &speakerKey, &s.Name, &s.Highlights, &s.DurationMinutes, &s.TypeOfSession,
		&s.Date, &start, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if s.Key, err = domain.DecodeKey(key); err != nil {
		return nil, fmt.Errorf("stored session key %q: %w", key, err)
	}
	if s.SpeakerKey, err = domain.DecodeKey(speakerKey); err != nil {
		return nil, fmt.Errorf("stored speaker key %q: %w", speakerKey, err)
	}
	s.StartTime = domain.TimeOfDay(start)
	return s, nil
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	defer rows.Close()
	out := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (websafe_key, conference_key, speaker_key, name, highlights, duration_minutes,
			type_of_session, session_date, start_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query, s.Key.Encode(), s.ConferenceKey().Encode(), s.SpeakerKey.Encode(),
		s.Name, s.Highlights, s.DurationMinutes, s.TypeOfSession, s.Date, int(s.StartTime), s.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: session already exists", domain.ErrConflict)
	}
	return err
}

func (r *sessionRepository) GetByKey(ctx context.Context, key *domain.Key) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE websafe_key = $1`
	return scanSession(r.DB.QueryRowContext(ctx, query, key.Encode()))
}

func (r *sessionRepository) GetMulti(ctx context.Context, keys []*domain.Key) ([]*domain.Session, error) {
	if len(keys) == 0 {
		return []*domain.Session{}, nil
	}
	encoded := make([]string, len(keys))
	for i, k := range keys {
		encoded[i] = k.Encode()
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE websafe_key = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(encoded))
	if err != nil {
		return nil, err
	}
	found, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*domain.Session, len(found))
	for _, s := range found {
		byKey[s.Key.Encode()] = s
	}
	out := make([]*domain.Session, 0, len(found))
	for _, k := range encoded {
		if s, ok := byKey[k]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sessionRepository) List(ctx context.Context, f domain.SessionFilter) ([]*domain.Session, error) {
	where, args := sessionWhere(f)
	order := "created_at, websafe_key"
	if f.OrderByStartTime {
		order = "start_minutes, " + order
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions` + where + ` ORDER BY ` + order
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func sessionWhere(f domain.SessionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ConferenceKey != nil {
		add("conference_key = $%d", f.ConferenceKey.Encode())
	}
	if f.SpeakerKey != nil {
		add("speaker_key = $%d", f.SpeakerKey.Encode())
	}
	if len(f.Types) > 0 {
		add("type_of_session = ANY($%d)", pq.Array(f.Types))
	}
	if len(f.ExcludeTypes) > 0 {
		add("NOT (type_of_session = ANY($%d))", pq.Array(f.ExcludeTypes))
	}
	if f.Date != nil {
		add("session_date = $%d", f.Date.Format(domain.DateLayout))
	}
	if f.StartsAtOrBefore != nil {
		add("start_minutes <= $%d", int(*f.StartsAtOrBefore))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
