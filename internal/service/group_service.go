package service

import (
	"context"
	"strings"

	"kapipost/internal/models"
	"kapipost/internal/repository"
	"kapipost/internal/validation"
)

type GroupService struct {
	groupRepo repository.GroupRepository
}

type CreateGroupInput struct {
	Title       string
	Slug        string
	Description string
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > 100 {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}
	if err := validation.ValidateGroupSlug(in.Slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group := &models.Group{
		Title:       title,
		Slug:        in.Slug,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

// ListGroups returns one page of groups ordered by title.
func (s *GroupService) ListGroups(ctx context.Context, page int) (*GroupPage, error) {
	total, err := s.groupRepo.Count(ctx)
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

	groups, err := s.groupRepo.List(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []*models.Group{}
	}

	return &GroupPage{
		Groups:     groups,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

type UpdateGroupInput struct {
	Slug        string
	Title       string
	Description string
}

func (s *GroupService) UpdateGroup(ctx context.Context, in UpdateGroupInput) (*models.Group, error) {
	group, err := s.groupRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > 100 {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}

	group.Title = title
	group.Description = strings.TrimSpace(in.Description)
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group. Its posts stay behind with the group
// reference cleared.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, group.ID)
}

// GroupPage is one rendered page of the group directory.
type GroupPage struct {
	Groups     []*models.Group `json:"groups"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalCount int64           `json:"total_count"`
	HasNext    bool            `json:"has_next"`
	HasPrev    bool            `json:"has_previous"`
}
