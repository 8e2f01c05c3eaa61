package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/instashare-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFollowInsertsEdge(t *testing.T) {
	db, smock := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	smock.ExpectQuery(`INSERT INTO "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.CreateFollow(context.Background(), &models.Follow{FollowerID: 1, FollowingID: 2})
	require.NoError(t, err)
	require.NoError(t, smock.ExpectationsWereMet())
}

func TestDeleteFollowReportsRowsAffected(t *testing.T) {
	db, smock := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	smock.ExpectExec(`DELETE FROM "follows" WHERE follower_id = \$1 AND following_id = \$2`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.DeleteFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestIsFollowing(t *testing.T) {
	db, smock := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	smock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE follower_id = \$1 AND following_id = \$2`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	following, err := repo.IsFollowing(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestGetFollowersCount(t *testing.T) {
	db, smock := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	smock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE following_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.GetFollowersCount(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestGetFollowingIDs(t *testing.T) {
	db, smock := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	smock.ExpectQuery(`SELECT "following_id" FROM "follows" WHERE follower_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}).AddRow(2).AddRow(3))

	ids, err := repo.GetFollowingIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, ids)
}
