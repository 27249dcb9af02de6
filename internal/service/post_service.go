package service

import (
	"context"

	"newswire/internal/cache"
	"newswire/internal/middleware"
	"newswire/internal/models"
	"newswire/internal/repository"
	"newswire/internal/validation"
)

// frontPageLimit is the default page size; it is the only page cached under
// the shared front-page key.
const frontPageLimit = 20

type PostService struct {
	postRepo repository.PostRepository
	voteRepo repository.VoteRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	PostURL string
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Title  string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		voteRepo: voteRepo,
		userRepo: userRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostURL(in.PostURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	exists, err := s.userRepo.Exists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	post := &models.Post{
		Title:   in.Title,
		PostURL: in.PostURL,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	// The anonymous front page is the hottest read; serve it cache-aside.
	// Only the exact default page maps to the shared key; any other limit
	// or offset goes straight to the store.
	if currentUserID == 0 && offset == 0 && limit == frontPageLimit {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, limit, offset, 0)
			return fetchErr
		})
		return posts, err
	}

	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// GetVotedPosts returns the distinct posts the user has voted on.
func (s *PostService) GetVotedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.postRepo.GetVotedByUser(ctx, userID, limit, offset)
}

// Upvote records userID's vote on postID and returns the refreshed post
// read-model together with whether a new vote was actually counted.
//
// A duplicate vote is a no-op: the unique index on (user_id, post_id) plus
// the conflict-ignoring insert guarantee at most one counted vote per pair
// even under concurrent submissions. The re-read happens after the insert
// has committed, so a failure there leaves the recorded vote in place and
// is reported to the caller.
func (s *PostService) Upvote(ctx context.Context, userID, postID uint) (*models.Post, bool, error) {
	postExists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	if !postExists {
		return nil, false, models.NewNotFoundError("Post", postID)
	}

	userExists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !userExists {
		return nil, false, models.NewNotFoundError("User", userID)
	}

	created, err := s.voteRepo.Record(ctx, userID, postID)
	if err != nil {
		return nil, false, err
	}
	if created {
		middleware.VotesRecorded.Inc()
	} else {
		middleware.DuplicateVotes.Inc()
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, created, err
	}
	return post, created, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	post.Title = in.Title

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}
