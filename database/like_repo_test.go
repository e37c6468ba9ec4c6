package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectToggleLike(mock sqlmock.Sqlmock, blogID, userID uuid.UUID, countAfter int64) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes" WHERE blog_id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WithArgs(blogID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectExec(`UPDATE "blog_posts" SET "likes_count"=likes_count \+ 1 WHERE id = \$1`).
		WithArgs(blogID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT "likes_count" FROM "blog_posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(countAfter))
}

func expectToggleUnlike(mock sqlmock.Sqlmock, likeID, blogID, userID uuid.UUID, countAfter int64) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes" WHERE blog_id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "blog_id", "user_id", "created_at"}).
			AddRow(likeID.String(), blogID.String(), userID.String(), time.Now()))
	mock.ExpectExec(`DELETE FROM "likes" WHERE id = \$1`).
		WithArgs(likeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "blog_posts" SET "likes_count"=GREATEST\(likes_count - 1, 0\) WHERE id = \$1`).
		WithArgs(blogID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT "likes_count" FROM "blog_posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(countAfter))
}

func TestToggleLikesUnlikedPost(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepo(db)
	blogID, userID := uuid.New(), uuid.New()

	expectToggleLike(mock, blogID, userID, 1)

	liked, count, err := repo.Toggle(blogID, userID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleUnlikesLikedPostWithFlooredDecrement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepo(db)
	likeID, blogID, userID := uuid.New(), uuid.New(), uuid.New()

	expectToggleUnlike(mock, likeID, blogID, userID, 0)

	liked, count, err := repo.Toggle(blogID, userID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleTwiceRestoresOriginalState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepo(db)
	likeID, blogID, userID := uuid.New(), uuid.New(), uuid.New()

	expectToggleLike(mock, blogID, userID, 1)
	expectToggleUnlike(mock, likeID, blogID, userID, 0)

	liked, count, err := repo.Toggle(blogID, userID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, err = repo.Toggle(blogID, userID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
