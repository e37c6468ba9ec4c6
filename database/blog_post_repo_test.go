package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/bloghub-backend/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestFindAllFiltersByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogPostRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "blog_posts" WHERE category = \$1 ORDER BY created_at DESC`).
		WithArgs("Technology").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	blogPosts, err := repo.FindAll("Technology")
	require.NoError(t, err)
	assert.Empty(t, blogPosts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllTreatsAllAsNoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogPostRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "blog_posts" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindAll(models.CategoryAll)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDReturnsNilWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogPostRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "blog_posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	blogPost, err := repo.FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, blogPost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementViewsUpdatesInPlace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogPostRepo(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "blog_posts" SET "views"=views \+ 1 WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadesCommentsAndLikes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogPostRepo(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE blog_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "likes" WHERE blog_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "blog_posts" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
