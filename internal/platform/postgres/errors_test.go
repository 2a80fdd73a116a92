package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"aralin/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  error
		wantIs error
	}{
		{
			name:   "nil error",
			input:  nil,
			wantIs: nil,
		},
		{
			name:   "no rows maps to not found",
			input:  sql.ErrNoRows,
			wantIs: store.ErrNotFound,
		},
		{
			name:   "unique violation maps to duplicate",
			input:  &pgconn.PgError{Code: uniqueViolationCode},
			wantIs: store.ErrDuplicate,
		},
		{
			name:   "foreign key violation maps to invalid entity",
			input:  &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "cards_verb_id_fkey"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "check violation maps to invalid entity",
			input:  &pgconn.PgError{Code: checkViolationCode},
			wantIs: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tc.input)
			if tc.wantIs == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantIs)
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection refused")
	assert.Equal(t, plain, MapError(plain))
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrVerbNotFound))
	assert.ErrorIs(t,
		CheckRowsAffected(fakeResult{rows: 0}, store.ErrVerbNotFound),
		store.ErrVerbNotFound)
	assert.Error(t, CheckRowsAffected(nil, store.ErrVerbNotFound))

	rowsErr := errors.New("driver does not support RowsAffected")
	assert.ErrorIs(t,
		CheckRowsAffected(fakeResult{err: rowsErr}, store.ErrVerbNotFound),
		rowsErr)
}
