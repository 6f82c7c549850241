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

const conferenceColumns = `websafe_key, organizer_user_id, name, description, topics, city, start_date, end_date,
		month, max_attendees, seats_available, version, created_at, updated_at`

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{DB: db}
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var (
		key                string
		topics             pq.StringArray
		startDate, endDate sql.NullTime
	)
	err := row.Scan(&key, &c.OrganizerUserID, &c.Name, &c.Description, &topics, &c.City, &startDate, &endDate,
		&c.Month, &c.MaxAttendees, &c.SeatsAvailable, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if c.Key, err = domain.DecodeKey(key); err != nil {
		return nil, fmt.Errorf("stored conference key %q: %w", key, err)
	}
	c.Topics = []string(topics)
	if c.Topics == nil {
		c.Topics = []string{}
	}
	c.StartDate = datePtr(startDate)
	c.EndDate = datePtr(endDate)
	return c, nil
}

func scanConferences(rows *sql.Rows) ([]*domain.Conference, error) {
	defer rows.Close()
	out := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (` + conferenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.Key.Encode(), c.OrganizerUserID, c.Name, c.Description, pq.Array(c.Topics), c.City,
		nullDate(c.StartDate), nullDate(c.EndDate), c.Month, c.MaxAttendees, c.SeatsAvailable,
		c.Version, c.CreatedAt, c.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: conference already exists", domain.ErrConflict)
	}
	return err
}

func (r *conferenceRepository) GetByKey(ctx context.Context, key *domain.Key) (*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE websafe_key = $1`
	return scanConference(r.DB.QueryRowContext(ctx, query, key.Encode()))
}

func (r *conferenceRepository) GetMulti(ctx context.Context, keys []*domain.Key) ([]*domain.Conference, error) {
	if len(keys) == 0 {
		return []*domain.Conference{}, nil
	}
	encoded := make([]string, len(keys))
	for i, k := range keys {
		encoded[i] = k.Encode()
	}
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE websafe_key = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(encoded))
	if err != nil {
		return nil, err
	}
	found, err := scanConferences(rows)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*domain.Conference, len(found))
	for _, c := range found {
		byKey[c.Key.Encode()] = c
	}
	out := make([]*domain.Conference, 0, len(found))
	for _, k := range encoded {
		if c, ok := byKey[k]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *conferenceRepository) Update(ctx context.Context, c *domain.Conference) error {
	query := `
		UPDATE conferences
		SET name = $1, description = $2, topics = $3, city = $4, start_date = $5, end_date = $6,
			month = $7, max_attendees = $8, seats_available = $9, updated_at = $10, version = version + 1
		WHERE websafe_key = $11 AND version = $12
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.Name, c.Description, pq.Array(c.Topics), c.City, nullDate(c.StartDate), nullDate(c.EndDate),
		c.Month, c.MaxAttendees, c.SeatsAvailable, c.UpdatedAt, c.Key.Encode(), c.Version)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: seats available must not be negative", domain.ErrConflict)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrentUpdate
	}
	c.Version++
	return nil
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE organizer_user_id = $1
		ORDER BY created_at, websafe_key
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerUserID)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

func (r *conferenceRepository) Query(ctx context.Context, q *domain.ConferenceQuery) ([]*domain.Conference, error) {
	where, args, err := conferenceWhere(q)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + conferenceColumns + ` FROM conferences` + where + ` ORDER BY ` + conferenceOrderBy(q)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

var scalarColumns = map[domain.ConferenceField]string{
	domain.FieldCity:           "city",
	domain.FieldMonth:          "month",
	domain.FieldMaxAttendees:   "max_attendees",
	domain.FieldSeatsAvailable: "seats_available",
}

var sqlOperators = map[domain.Operator]string{
	domain.OpEqual:          "=",
	domain.OpGreater:        ">",
	domain.OpGreaterOrEqual: ">=",
	domain.OpLess:           "<",
	domain.OpLessOrEqual:    "<=",
	domain.OpNotEqual:       "<>",
}

// conferenceWhere renders the predicates as a WHERE clause with positional arguments.
// A topics predicate holds when any element of the topics array satisfies it.
func conferenceWhere(q *domain.ConferenceQuery) (string, []any, error) {
	if len(q.Predicates) == 0 {
		return "", nil, nil
	}
	conds := make([]string, 0, len(q.Predicates))
	args := make([]any, 0, len(q.Predicates))
	for _, p := range q.Predicates {
		op, ok := sqlOperators[p.Op]
		if !ok {
			return "", nil, fmt.Errorf("%w: unsupported operator %q", domain.ErrInvalidInput, p.Op)
		}
		args = append(args, p.Value)
		n := len(args)
		switch {
		case p.Field == domain.FieldTopics && p.Op == domain.OpEqual:
			conds = append(conds, fmt.Sprintf("$%d = ANY(topics)", n))
		case p.Field == domain.FieldTopics:
			conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(topics) AS t WHERE t %s $%d)", op, n))
		default:
			col, ok := scalarColumns[p.Field]
			if !ok {
				return "", nil, fmt.Errorf("%w: unsupported field %q", domain.ErrInvalidInput, p.Field)
			}
			conds = append(conds, fmt.Sprintf("%s %s $%d", col, op, n))
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// conferenceOrderBy compares text byte-wise (COLLATE "C") so the order matches ConferenceQuery.Sort.
func conferenceOrderBy(q *domain.ConferenceQuery) string {
	const byName = `name COLLATE "C", websafe_key`
	switch q.InequalityField {
	case "":
		return byName
	case domain.FieldTopics:
		return `(SELECT min(t COLLATE "C") FROM unnest(topics) AS t), ` + byName
	case domain.FieldCity:
		return `city COLLATE "C", ` + byName
	}
	return scalarColumns[q.InequalityField] + ", " + byName
}
