//go:build unit

package pgconv_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"lab-seat-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestNullableConversions(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{}))
	assert.Equal(t, id, *pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id)))
	assert.False(t, pgconv.UUIDPtrToPgtype(nil).Valid)

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
	assert.Equal(t, now, *pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(&now)))

	s := "x"
	assert.Equal(t, "x", *pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s)))
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(nil)))
}

func TestErrorClassification(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("insert: %w", &pgconn.PgError{Code: code})
	}

	assert.True(t, pgconv.IsExclusionViolation(wrap("23P01")))
	assert.True(t, pgconv.IsUniqueViolation(wrap("23505")))
	assert.True(t, pgconv.IsForeignKeyViolation(wrap("23503")))
	assert.True(t, pgconv.IsCheckViolation(wrap("23514")))
	assert.False(t, pgconv.IsExclusionViolation(wrap("23505")))
	assert.False(t, pgconv.IsUniqueViolation(errors.New("plain")))

	assert.True(t, pgconv.IsNoRows(fmt.Errorf("find: %w", pgx.ErrNoRows)))
}
