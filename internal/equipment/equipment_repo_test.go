package equipment_test

import (
	"context"
	"database/sql"
	"testing"

	"tireops/internal/equipment"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGormOverMock(t *testing.T) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: poolDB}),
		&gorm.Config{SkipDefaultTransaction: true},
	)
	assert.NoError(t, err)

	return gormDB, poolDB, poolMock
}

func TestEquipmentRepository_TransactionRouting(t *testing.T) {
	ctx := context.Background()

	t.Run("writes with WithTx run on the transaction connection", func(t *testing.T) {
		gormDB, poolDB, poolMock := setupGormOverMock(t)
		defer poolDB.Close()

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		txMock.ExpectExec(`UPDATE "equipment_units" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectExec(`DELETE FROM "assignment_agreements"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectRollback()

		tx, err := txDB.Begin()
		assert.NoError(t, err)

		unit := availableScanner()
		unit.Status = equipment.StatusAssigned

		repo := equipment.NewRepository(gormDB).WithTx(tx)

		ok, err := repo.UpdateGuarded(ctx, unit, equipment.StatusAvailable)
		assert.NoError(t, err)
		assert.True(t, ok)

		assert.NoError(t, repo.DeleteAgreementsByEquipment(ctx, unit.ID.String()))

		// Rollback harus membuang kedua write sekaligus.
		assert.NoError(t, tx.Rollback())

		assert.NoError(t, txMock.ExpectationsWereMet())
		// Pool tidak boleh tersentuh selama transaksi berjalan.
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("writes without tx run on the pool", func(t *testing.T) {
		gormDB, poolDB, poolMock := setupGormOverMock(t)
		defer poolDB.Close()

		poolMock.ExpectExec(`UPDATE "equipment_units" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		unit := availableScanner()
		unit.Status = equipment.StatusAssigned

		repo := equipment.NewRepository(gormDB)

		ok, err := repo.UpdateGuarded(ctx, unit, equipment.StatusAvailable)
		assert.NoError(t, err)
		assert.True(t, ok)

		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}
