package postgres

import (
	"context"
	"errors"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationStore_UpdateAttendance(t *testing.T) {
	ctx := context.Background()
	key := domain.NewConferenceKey("org", "c1")

	expectLocks := func(mock sqlmock.Sqlmock, seats int) {
		mock.ExpectBegin()
		mock.ExpectQuery(`FROM profiles WHERE user_id = \$1 FOR UPDATE`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(profileRowColumns).
				AddRow("alice", "alice", "", "NOT_SPECIFIED", "{}", "{}", int64(0), testTime, testTime))
		mock.ExpectQuery(`FROM conferences WHERE websafe_key = \$1 FOR UPDATE`).
			WithArgs(key.Encode()).
			WillReturnRows(conferenceRow(sqlmock.NewRows(conferenceRowColumns), key, "GopherCon", seats))
	}
	register := func(p *domain.Profile, c *domain.Conference) error {
		if err := p.Attend(c.Key.Encode()); err != nil {
			return err
		}
		return c.TakeSeat()
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "commits both rows",
			mock: func(mock sqlmock.Sqlmock) {
				expectLocks(mock, 3)
				mock.ExpectExec(`UPDATE profiles`).
					WithArgs(pq.Array([]string{key.Encode()}), sqlmock.AnyArg(), "alice").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE conferences`).
					WithArgs(2, sqlmock.AnyArg(), key.Encode()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "callback error rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				expectLocks(mock, 0)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "serialization failure",
			mock: func(mock sqlmock.Sqlmock) {
				expectLocks(mock, 3)
				mock.ExpectExec(`UPDATE profiles`).WillReturnError(&pq.Error{Code: "40001"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConcurrentUpdate,
		},
		{
			name: "deadlock on lock",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FROM profiles`).WillReturnError(&pq.Error{Code: "40P01"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConcurrentUpdate,
		},
		{
			name: "missing conference",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FROM profiles`).
					WillReturnRows(sqlmock.NewRows(profileRowColumns).
						AddRow("alice", "alice", "", "NOT_SPECIFIED", "{}", "{}", int64(0), testTime, testTime))
				mock.ExpectQuery(`FROM conferences`).WillReturnRows(sqlmock.NewRows(conferenceRowColumns))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewRegistrationStore(db).UpdateAttendance(ctx, "alice", key, register)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
