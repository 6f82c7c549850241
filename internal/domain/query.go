package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ConferenceField is a queryable conference property.
type ConferenceField string

const (
	FieldCity           ConferenceField = "city"
	FieldTopics         ConferenceField = "topics"
	FieldMonth          ConferenceField = "month"
	FieldMaxAttendees   ConferenceField = "maxAttendees"
	FieldSeatsAvailable ConferenceField = "seatsAvailable"
)

// Operator is a comparison applied by a ConferencePredicate.
type Operator string

const (
	OpEqual          Operator = "="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpNotEqual       Operator = "!="
)

// IsInequality reports whether op needs an ordered index; everything but equality does.
func (op Operator) IsInequality() bool { return op != OpEqual }

// publicFields is the client-facing field vocabulary. seatsAvailable is internal only.
var publicFields = map[string]ConferenceField{
	"CITY":          FieldCity,
	"TOPIC":         FieldTopics,
	"MONTH":         FieldMonth,
	"MAX_ATTENDEES": FieldMaxAttendees,
}

var publicOperators = map[string]Operator{
	"EQ":   OpEqual,
	"GT":   OpGreater,
	"GTEQ": OpGreaterOrEqual,
	"LT":   OpLess,
	"LTEQ": OpLessOrEqual,
	"NE":   OpNotEqual,
}

func isIntField(f ConferenceField) bool {
	switch f {
	case FieldMonth, FieldMaxAttendees, FieldSeatsAvailable:
		return true
	}
	return false
}

// ConferenceFilter is a client-supplied (field, operator, value) triple, e.g. ("CITY", "EQ", "London").
type ConferenceFilter struct {
	Field    string
	Operator string
	Value    string
}

// ConferencePredicate is a validated, typed filter. Value is a string for city/topics
// and an int for numeric fields.
type ConferencePredicate struct {
	Field ConferenceField
	Op    Operator
	Value any
}

// ConferenceQuery is a validated set of predicates with at most one inequality field.
type ConferenceQuery struct {
	Predicates []ConferencePredicate
	// InequalityField is the single field used with a non-equality operator, if any.
	InequalityField ConferenceField
}

// ParseConferenceFilters validates client filters against the public vocabulary.
func ParseConferenceFilters(filters []ConferenceFilter) (*ConferenceQuery, error) {
	preds := make([]ConferencePredicate, 0, len(filters))
	for _, f := range filters {
		field, ok := publicFields[strings.TrimSpace(f.Field)]
		if !ok {
			return nil, fmt.Errorf("%w: filter contains invalid field or operator", ErrInvalidInput)
		}
		op, ok := publicOperators[strings.TrimSpace(f.Operator)]
		if !ok {
			return nil, fmt.Errorf("%w: filter contains invalid field or operator", ErrInvalidInput)
		}
		var value any = f.Value
		if isIntField(field) {
			n, err := strconv.Atoi(strings.TrimSpace(f.Value))
			if err != nil {
				return nil, fmt.Errorf("%w: filter value for %s must be an integer", ErrInvalidInput, f.Field)
			}
			value = n
		}
		preds = append(preds, ConferencePredicate{Field: field, Op: op, Value: value})
	}
	return NewConferenceQuery(preds...)
}

// NewConferenceQuery checks that at most one field is used with an inequality operator.
func NewConferenceQuery(preds ...ConferencePredicate) (*ConferenceQuery, error) {
	q := &ConferenceQuery{Predicates: preds}
	for _, p := range preds {
		if !p.Op.IsInequality() {
			continue
		}
		if q.InequalityField != "" && q.InequalityField != p.Field {
			return nil, fmt.Errorf("%w: inequality filter is allowed on only one field", ErrInvalidInput)
		}
		q.InequalityField = p.Field
	}
	return q, nil
}

// Matches evaluates every predicate against c. A predicate on topics holds when any topic satisfies it.
func (q *ConferenceQuery) Matches(c *Conference) bool {
	for _, p := range q.Predicates {
		if !p.matches(c) {
			return false
		}
	}
	return true
}

func (p ConferencePredicate) matches(c *Conference) bool {
	switch p.Field {
	case FieldCity:
		return compare(p.Op, cmp.Compare(c.City, asString(p.Value)))
	case FieldTopics:
		return slices.ContainsFunc(c.Topics, func(t string) bool {
			return compare(p.Op, cmp.Compare(t, asString(p.Value)))
		})
	case FieldMonth:
		return compare(p.Op, cmp.Compare(c.Month, asInt(p.Value)))
	case FieldMaxAttendees:
		return compare(p.Op, cmp.Compare(c.MaxAttendees, asInt(p.Value)))
	case FieldSeatsAvailable:
		return compare(p.Op, cmp.Compare(c.SeatsAvailable, asInt(p.Value)))
	}
	return false
}

func compare(op Operator, c int) bool {
	switch op {
	case OpEqual:
		return c == 0
	case OpGreater:
		return c > 0
	case OpGreaterOrEqual:
		return c >= 0
	case OpLess:
		return c < 0
	case OpLessOrEqual:
		return c <= 0
	case OpNotEqual:
		return c != 0
	}
	return false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	n, _ := v.(int)
	return n
}

// Sort orders conferences by the inequality field (if any), then by name, ascending.
// Topics sort by their smallest element.
func (q *ConferenceQuery) Sort(cs []*Conference) {
	slices.SortStableFunc(cs, func(a, b *Conference) int {
		if c := compareField(q.InequalityField, a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

func compareField(f ConferenceField, a, b *Conference) int {
	switch f {
	case FieldCity:
		return cmp.Compare(a.City, b.City)
	case FieldTopics:
		return cmp.Compare(minTopic(a), minTopic(b))
	case FieldMonth:
		return cmp.Compare(a.Month, b.Month)
	case FieldMaxAttendees:
		return cmp.Compare(a.MaxAttendees, b.MaxAttendees)
	case FieldSeatsAvailable:
		return cmp.Compare(a.SeatsAvailable, b.SeatsAvailable)
	}
	return 0
}

func minTopic(c *Conference) string {
	if len(c.Topics) == 0 {
		return ""
	}
	return slices.Min(c.Topics)
}
