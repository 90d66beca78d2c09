package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
	"github.com/sfgnexus/backend/internal/domain/validation"
)

func newMockChecklistRepository(t *testing.T) (*GormChecklistRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormChecklistRepository(gormDB), mock, mockDB
}

func checklistRows(documentID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"document_id", "delivery_type", "all_checks_complete", "validation_passed",
	}).AddRow(uuid.New(), time.Now(), time.Now(), 1, documentID, "SUPPLY_ONLY", false, false)
}

func TestGormChecklistRepository_FindByDocumentID(t *testing.T) {
	t.Run("finds existing checklist", func(t *testing.T) {
		repo, mock, mockDB := newMockChecklistRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "validation_checklists" WHERE document_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(documentID, 1).
			WillReturnRows(checklistRows(documentID))

		checklist, err := repo.FindByDocumentID(context.Background(), documentID)

		require.NoError(t, err)
		assert.Equal(t, documentID, checklist.DocumentID)
		assert.False(t, checklist.ValidationPassed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no checklist started", func(t *testing.T) {
		repo, mock, mockDB := newMockChecklistRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "validation_checklists" WHERE document_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(documentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByDocumentID(context.Background(), documentID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormChecklistRepository_Save(t *testing.T) {
	t.Run("inserts a fresh checklist", func(t *testing.T) {
		repo, mock, mockDB := newMockChecklistRepository(t)
		defer mockDB.Close()

		checklist, err := validation.NewChecklist(uuid.New(), document.DeliverySupplyOnly)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "validation_checklists" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "validation_checklists" WHERE id = \$1`).
			WithArgs(checklist.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO "validation_checklists"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Save(context.Background(), checklist)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates an existing checklist", func(t *testing.T) {
		repo, mock, mockDB := newMockChecklistRepository(t)
		defer mockDB.Close()

		checklist, err := validation.NewChecklist(uuid.New(), document.DeliverySupplyOnly)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "validation_checklists" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Save(context.Background(), checklist)

		require.NoError(t, err)
		assert.Equal(t, 2, checklist.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces concurrency conflict on stale version", func(t *testing.T) {
		repo, mock, mockDB := newMockChecklistRepository(t)
		defer mockDB.Close()

		checklist, err := validation.NewChecklist(uuid.New(), document.DeliverySupplyOnly)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "validation_checklists" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "validation_checklists" WHERE id = \$1`).
			WithArgs(checklist.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err = repo.Save(context.Background(), checklist)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, checklist.Version, "version restored after failed save")
	})
}
