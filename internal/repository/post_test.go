package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"newswire/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var errFKViolation = errors.New(`insert or update on table violates foreign key constraint (SQLSTATE 23503)`)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Show: a test post", PostURL: "https://example.com/x", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Create_MissingAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnError(errFKViolation)
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.Post{Title: "t", PostURL: "https://e.com", UserID: 99})
	assert.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrCodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		postID        uint
		currentUserID uint
		mockBehavior  func()
		expectedTitle string
		expectedError bool
	}{
		{
			name:          "Success with viewer fields",
			postID:        1,
			currentUserID: 2,
			mockBehavior: func() {
				// main query carries the count subqueries and the viewer's
				// voted flag as computed columns
				mock.ExpectQuery(`SELECT posts\.\*.*vote_count.*comment_count.*voted.*FROM "posts"`).
					WithArgs(2, 1, 1).
					WillReturnRows(sqlmock.NewRows(
						[]string{"id", "title", "post_url", "user_id", "vote_count", "comment_count", "voted"}).
						AddRow(1, "Post 1", "https://example.com", 10, 7, 2, true))

				// comments preload (ordered), empty here
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."post_id" = $1`)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))

				// author preload
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "author10"))
			},
			expectedTitle: "Post 1",
		},
		{
			name:          "Not Found",
			postID:        42,
			currentUserID: 2,
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT posts\.\*.*FROM "posts"`).
					WithArgs(2, 42, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			post, err := repo.GetByID(ctx, tt.postID, tt.currentUserID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, models.IsCode(err, models.ErrCodeNotFound))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTitle, post.Title)
				assert.Equal(t, 7, post.VoteCount)
				assert.Equal(t, 2, post.CommentCount)
				assert.True(t, post.Voted)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(
		[]string{"id", "title", "user_id", "vote_count", "comment_count", "voted"}).
		AddRow(2, "Newer", 10, 3, 0, false).
		AddRow(1, "Older", 11, 5, 1, false)
	mock.ExpectQuery(`SELECT posts\.\*.*FROM "posts".*ORDER BY created_at DESC`).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(10, 11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(10, "user10").AddRow(11, "user11"))

	posts, err := repo.List(ctx, 20, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, 3, posts[0].VoteCount)
	assert.Equal(t, "user10", posts[0].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetVotedByUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// joins through the vote junction table per the association graph
	rows := sqlmock.NewRows([]string{"id", "title", "user_id", "vote_count"}).
		AddRow(5, "Voted post", 10, 12)
	mock.ExpectQuery(`SELECT DISTINCT posts\.\*.*JOIN votes ON votes\.post_id = posts\.id.*votes\.user_id = \$1`).
		WithArgs(3, 20).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "user10"))

	posts, err := repo.GetVotedByUser(ctx, 3, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "Voted post", posts[0].Title)
	assert.Equal(t, 12, posts[0].VoteCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.Exists(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
