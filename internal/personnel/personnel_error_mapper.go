package personnel

import (
	"errors"
	"strings"

	personnelerrors "tireops/internal/personnel/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return personnelerrors.ErrPersonnelNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_personnel_number":
				return personnelerrors.ErrPersonnelNumberAlreadyExists
			case "uq_personnel_email":
				return personnelerrors.ErrPersonnelAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_personnel_number") {
		return personnelerrors.ErrPersonnelNumberAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_personnel_email") {
		return personnelerrors.ErrPersonnelAlreadyExists
	}

	return err
}
