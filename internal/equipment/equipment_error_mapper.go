package equipment

import (
	"errors"
	"strings"

	equipmenterrors "tireops/internal/equipment/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return equipmenterrors.ErrEquipmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_equipment_number" {
			return equipmenterrors.ErrEquipmentNumberAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_equipment_number") {
		return equipmenterrors.ErrEquipmentNumberAlreadyExists
	}

	return err
}
