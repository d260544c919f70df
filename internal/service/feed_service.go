// Package service contains the application's business logic.
package service

import (
	"context"
	"encoding/json"

	"kapipost/internal/cache"
	"kapipost/internal/models"
	"kapipost/internal/observability"
	"kapipost/internal/repository"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// FeedService assembles paginated post listings for every feed view and
// owns the rendered-page cache of the global view.
type FeedService struct {
	postRepo repository.PostRepository
}

// FeedPage is one rendered page of a feed.
type FeedPage struct {
	Posts      []*models.Post `json:"posts"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	TotalCount int64          `json:"total_count"`
	HasNext    bool           `json:"has_next"`
	HasPrev    bool           `json:"has_previous"`
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// Page returns the requested feed page. Page numbers are 1-based; anything
// below 1 becomes 1 and anything past the end becomes the last page, so a
// wandering page parameter never produces an error or an empty page when
// content exists.
func (s *FeedService) Page(ctx context.Context, filter repository.PostFilter, page int) (*FeedPage, error) {
	total, err := s.postRepo.Count(ctx, filter)
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

	posts, err := s.postRepo.List(ctx, filter, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &FeedPage{
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// GlobalPage renders a page of the global feed, serving the stored body
// verbatim on a cache hit. Each page number caches under its own key and
// entries expire on their TTL alone; post writes do not invalidate them.
func (s *FeedService) GlobalPage(ctx context.Context, page int) ([]byte, error) {
	if page < 1 {
		page = 1
	}
	key := cache.FeedPageKey(cache.FeedViewGlobal, page)

	if body, found, err := cache.GetBytes(ctx, key); err == nil && found {
		observability.FeedCacheRequests.WithLabelValues(cache.FeedViewGlobal, "hit").Inc()
		return body, nil
	}
	observability.FeedCacheRequests.WithLabelValues(cache.FeedViewGlobal, "miss").Inc()

	feedPage, err := s.Page(ctx, repository.PostFilter{}, page)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(feedPage)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// best-effort; a cache write failure must not fail the request
	_ = cache.SetBytes(ctx, key, body, cache.FeedPageTTL)
	return body, nil
}

// ClearPageCache drops every cached feed page immediately.
func (s *FeedService) ClearPageCache(ctx context.Context) error {
	if err := cache.ClearFeedPages(ctx); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
