package repository

import (
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/pgconv"
)

func wrapWriteErr(msg string, err error) error {
	switch {
	case pgconv.IsExclusionViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindConflict)
	case pgconv.IsUniqueViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	case pgconv.IsForeignKeyViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}
