package server

import (
	"newswire/internal/models"
	"newswire/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Title   string `json:"title"`
		PostURL string `json:"post_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.PostURL == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and post URL are required"))
	}

	// The author is always the authenticated user; any user_id in the
	// request body is ignored.
	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:  userID,
		Title:   req.Title,
		PostURL: req.PostURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID := currentUserID(c)

	posts, err := s.postService.ListPosts(ctx, page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	post, err := s.postService.GetPost(ctx, id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// GetVotedPosts handles GET /api/users/:id/voted
func (s *Server) GetVotedPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userIDParam, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	posts, err := s.postService.GetVotedPosts(ctx, userIDParam, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// UpvotePost handles PUT /api/posts/:id/upvote
func (s *Server) UpvotePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, created, err := s.postService.Upvote(ctx, userID, postID)
	if err != nil {
		if created && post == nil {
			// The vote was recorded but the refreshed read model could not
			// be loaded; surface the failure rather than stale counts.
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return respondServiceError(c, err)
	}

	// "counted" reports whether this request added a vote; the post's own
	// "voted" field reports whether the viewer has ever voted on it.
	return c.JSON(fiber.Map{
		"post":    post,
		"counted": created,
	})
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID: userID,
		PostID: postID,
		Title:  req.Title,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); delErr != nil {
		return respondServiceError(c, delErr)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
