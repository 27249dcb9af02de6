package repository

import (
	"context"

	"newswire/internal/cache"
	"newswire/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines persistence operations for the vote junction table.
// Per-post counts and the viewer's voted flag come back on the post read
// model, so Record is the only operation the table needs.
type VoteRepository interface {
	// Record inserts a vote for (userID, postID). It returns false when the
	// user had already voted on the post; the insert is then a no-op.
	Record(ctx context.Context, userID, postID uint) (bool, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Record(ctx context.Context, userID, postID uint) (bool, error) {
	// Single atomic statement: the unique index on (user_id, post_id) plus
	// ON CONFLICT DO NOTHING makes concurrent duplicate votes race-free,
	// and the FK constraints reject dangling references.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO votes (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return false, models.NewNotFoundError("Post", postID)
		}
		return false, models.NewInternalError(result.Error)
	}

	created := result.RowsAffected > 0
	if created {
		cache.InvalidatePost(ctx, postID)
		cache.InvalidatePostsList(ctx)
	}
	return created, nil
}
