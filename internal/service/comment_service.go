package service

import (
	"context"
	"strings"

	"kapipost/internal/models"
	"kapipost/internal/observability"
	"kapipost/internal/repository"
	"kapipost/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	// commenting on a missing post is a 404, not a dangling row
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     strings.TrimSpace(in.Text),
		AuthorID: in.UserID,
		PostID:   &in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreated.Inc()

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns one page of a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page int) (*CommentPage, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return &CommentPage{
		Comments:   comments,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// CommentPage is one rendered page of a post's comments.
type CommentPage struct {
	Comments   []*models.Comment `json:"comments"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	TotalCount int64             `json:"total_count"`
	HasNext    bool              `json:"has_next"`
	HasPrev    bool              `json:"has_previous"`
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}
