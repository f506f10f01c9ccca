package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

func TestDeleteCategory(t *testing.T) {
	t.Run("BlockedWhilePlacesReferenceIt", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM places WHERE category_id = \$1`).
			WithArgs("cat-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		err := repo.Delete("cat-1")
		assert.ErrorIs(t, err, models.ErrCategoryInUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeletesUnreferencedCategory", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM places WHERE category_id = \$1`).
			WithArgs("cat-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
			WithArgs("cat-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete("cat-1")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM places WHERE category_id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete("missing")
		assert.ErrorIs(t, err, models.ErrCategoryNotFound)
	})
}
