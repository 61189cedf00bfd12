package server

import (
	"chirp/internal/models"
	"chirp/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts/create. A post needs text, an image,
// or both.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
		Img  string `json:"img"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Text == "" && req.Img == "" {
		return models.RespondError(c, models.NewValidationError("Post must have text or image"))
	}
	if err := validation.ValidatePostText(req.Text); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}

	post := &models.Post{
		UserID: currentUserID(c),
		Text:   req.Text,
	}
	if req.Img != "" {
		if s.uploads == nil {
			return models.RespondError(c, models.NewUpstreamError("Image host not configured", nil))
		}
		url, err := s.uploads.Upload(c.UserContext(), req.Img, "posts")
		if err != nil {
			return models.RespondError(c, models.NewUpstreamError("Image upload failed", err))
		}
		post.Img = url
	}

	if err := s.postRepo.Create(c.UserContext(), post); err != nil {
		return models.RespondError(c, err)
	}

	created, err := s.postRepo.GetByID(c.UserContext(), post.ID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAllPosts handles GET /api/posts/all, newest first.
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.ListAll(c.UserContext())
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(posts)
}

// LikePost handles POST /api/posts/like/:id, toggling the like state and
// returning the post's updated liker list.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	action, err := s.graphService.LikeUnlike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.RespondError(c, err)
	}

	likes, err := s.likeRepo.UserIDsForPost(c.UserContext(), postID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post " + action + " successfully",
		"likes":   likes,
	})
}

// CommentOnPost handles POST /api/posts/comment/:id.
func (s *Server) CommentOnPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Text == "" {
		return models.RespondError(c, models.NewValidationError("Comment text is required"))
	}
	if err := validation.ValidatePostText(req.Text); err != nil {
		return models.RespondError(c, models.NewValidationError(err.Error()))
	}

	if _, err := s.postRepo.GetByID(c.UserContext(), postID); err != nil {
		return models.RespondError(c, err)
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: currentUserID(c),
		Text:   req.Text,
	}
	if err := s.postRepo.AddComment(c.UserContext(), comment); err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeletePost handles DELETE /api/posts/delete/:id. Only the author may
// delete a post; its image is removed best-effort.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		return models.RespondError(c, err)
	}
	if post.UserID != currentUserID(c) {
		return models.RespondError(c,
			models.NewForbiddenError("You are not allowed to delete this post"))
	}

	if post.Img != "" && s.uploads != nil {
		if err := s.uploads.Destroy(c.UserContext(), post.Img); err != nil {
			middlewareLogWarn(c, "failed to remove post image", err)
		}
	}

	if err := s.postRepo.Delete(c.UserContext(), postID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// GetLikedPosts handles GET /api/posts/likes/:id, where :id is a user ID.
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.userRepo.GetByID(c.UserContext(), userID); err != nil {
		return models.RespondError(c, err)
	}

	posts, err := s.postRepo.ListLikedBy(c.UserContext(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(posts)
}

// GetFollowingPosts handles GET /api/posts/following: the home feed.
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	posts, err := s.graphService.Feed(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(posts)
}

// GetUserPosts handles GET /api/posts/user/:username.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	user, err := s.resolveUsername(c)
	if err != nil {
		return nil
	}

	posts, err := s.postRepo.ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(posts)
}
