// Package service implements the business logic on top of the repositories.
package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// Follow/like toggle outcomes, echoed back to the client.
const (
	ActionFollowed   = "followed"
	ActionUnfollowed = "unfollowed"
	ActionLiked      = "liked"
	ActionUnliked    = "unliked"
)

// GraphService implements the follow and like toggles. Both operations flip
// the current state: present becomes absent, absent becomes present.
type GraphService struct {
	users         repository.UserRepository
	follows       repository.FollowRepository
	posts         repository.PostRepository
	likes         repository.LikeRepository
	notifications repository.NotificationRepository
}

// NewGraphService creates a GraphService with its repository dependencies.
func NewGraphService(
	users repository.UserRepository,
	follows repository.FollowRepository,
	posts repository.PostRepository,
	likes repository.LikeRepository,
	notifications repository.NotificationRepository,
) *GraphService {
	return &GraphService{
		users:         users,
		follows:       follows,
		posts:         posts,
		likes:         likes,
		notifications: notifications,
	}
}

// FollowUnfollow toggles the follow edge from actorID to targetID and
// reports which way it flipped.
func (s *GraphService) FollowUnfollow(ctx context.Context, actorID, targetID uint) (string, error) {
	if actorID == targetID {
		return "", models.NewInvalidOperationError("You cannot follow yourself")
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return "", err
	}

	following, err := s.follows.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return "", err
	}

	if following {
		if err := s.follows.Delete(ctx, actorID, targetID); err != nil {
			return "", err
		}
		return ActionUnfollowed, nil
	}

	if err := s.follows.Create(ctx, actorID, targetID); err != nil {
		return "", err
	}
	return ActionFollowed, nil
}

// LikeUnlike toggles actorID's like on postID. Every like transition records
// a notification for the post author, including self-likes and repeat likes;
// unliking never does.
func (s *GraphService) LikeUnlike(ctx context.Context, actorID, postID uint) (string, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}

	liked, err := s.likes.IsLiked(ctx, actorID, postID)
	if err != nil {
		return "", err
	}

	if liked {
		if err := s.likes.Delete(ctx, actorID, postID); err != nil {
			return "", err
		}
		return ActionUnliked, nil
	}

	if err := s.likes.Create(ctx, actorID, postID); err != nil {
		return "", err
	}

	notification := &models.Notification{
		FromID: actorID,
		ToID:   post.UserID,
		PostID: postID,
		Type:   models.NotificationTypeLike,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return "", err
	}
	return ActionLiked, nil
}

// Feed returns the posts authored by everyone actorID follows, newest first.
func (s *GraphService) Feed(ctx context.Context, actorID uint) ([]models.Post, error) {
	ids, err := s.follows.FollowingIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByUsers(ctx, ids)
}
