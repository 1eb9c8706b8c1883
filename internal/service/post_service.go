package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"inkpress/internal/cache"
	"inkpress/internal/errors"
	"inkpress/internal/model"
	"inkpress/internal/repository"
	"inkpress/internal/storage"
)

const (
	postCacheTTL = 5 * time.Minute

	// MaxThumbnailSize is the upload cap for post thumbnails, in bytes.
	MaxThumbnailSize = 2_000_000

	minDescriptionLen = 12
)

// PostService exposes the post lifecycle: create, read, update, delete.
type PostService interface {
	CreatePost(ctx context.Context, creatorID uint, title string, category model.Category, description string, thumbnail *multipart.FileHeader) (*model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	ListPosts(ctx context.Context, page, limit int) ([]model.Post, error)
	ListByCategory(ctx context.Context, category model.Category) ([]model.Post, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]model.Post, error)
	UpdatePost(ctx context.Context, userID, postID uint, title string, category model.Category, description string, thumbnail *multipart.FileHeader) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID uint) error
}

type postService struct {
	posts repository.PostRepository
	files *storage.FileStore
	cache *cache.Client
}

// NewPostService builds a PostService.
func NewPostService(posts repository.PostRepository, files *storage.FileStore, cache *cache.Client) PostService {
	return &postService{posts: posts, files: files, cache: cache}
}

func (s *postService) cacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// CreatePost validates input, writes the thumbnail, then inserts the row. The
// creator always comes from the authenticated identity, never client input.
func (s *postService) CreatePost(ctx context.Context, creatorID uint, title string, category model.Category, description string, thumbnail *multipart.FileHeader) (*model.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || category == "" || strings.TrimSpace(description) == "" {
		return nil, errors.ErrMissingFields
	}
	if !model.ValidCategory(category) {
		return nil, errors.ErrInvalidCategory
	}
	if thumbnail == nil {
		return nil, errors.ErrFileRequired
	}

	name, err := s.files.Save(thumbnail, MaxThumbnailSize)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:       title,
		Category:    category,
		Description: description,
		Thumbnail:   name,
		CreatorID:   creatorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		// Compensate: no row references the file, remove it.
		_ = s.files.Remove(name)
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost returns a post by id, read through the cache.
func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

// ListPosts returns posts newest-first. page and limit are optional; zero
// values return everything.
func (s *postService) ListPosts(ctx context.Context, page, limit int) ([]model.Post, error) {
	offset := 0
	if page > 1 && limit > 0 {
		offset = (page - 1) * limit
	}
	return s.posts.List(ctx, offset, limit)
}

func (s *postService) ListByCategory(ctx context.Context, category model.Category) ([]model.Post, error) {
	if !model.ValidCategory(category) {
		return nil, errors.ErrInvalidCategory
	}
	return s.posts.ListByCategory(ctx, category)
}

func (s *postService) ListByCreator(ctx context.Context, creatorID uint) ([]model.Post, error) {
	return s.posts.ListByCreator(ctx, creatorID)
}

// UpdatePost patches a post after an ownership check. Text-only updates leave
// the thumbnail untouched; a new thumbnail is written before the row is patched
// and the old file is removed best-effort afterwards.
func (s *postService) UpdatePost(ctx context.Context, userID, postID uint, title string, category model.Category, description string, thumbnail *multipart.FileHeader) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}
	if post.CreatorID != userID {
		return nil, errors.ErrNotCreator
	}

	title = strings.TrimSpace(title)
	if title == "" || category == "" || strings.TrimSpace(description) == "" {
		return nil, errors.ErrMissingFields
	}
	if !model.ValidCategory(category) {
		return nil, errors.ErrInvalidCategory
	}
	if len(description) < minDescriptionLen {
		return nil, errors.ErrDescriptionTooShort
	}

	oldThumbnail := ""
	if thumbnail != nil {
		name, err := s.files.Save(thumbnail, MaxThumbnailSize)
		if err != nil {
			return nil, err
		}
		oldThumbnail = post.Thumbnail
		post.Thumbnail = name
	}

	post.Title = title
	post.Category = category
	post.Description = description
	if err := s.posts.Update(ctx, post); err != nil {
		if thumbnail != nil {
			_ = s.files.Remove(post.Thumbnail)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if oldThumbnail != "" {
		if err := s.files.Remove(oldThumbnail); err != nil {
			logCleanupFailure("thumbnail", oldThumbnail, err)
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(postID))
	return post, nil
}

// DeletePost removes a post after an ownership check. The row goes first, then
// the thumbnail file best-effort; an orphaned file beats a dangling reference.
func (s *postService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrPostNotFound
		}
		return err
	}
	if post.CreatorID != userID {
		return errors.ErrNotCreator
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := s.files.Remove(post.Thumbnail); err != nil {
		logCleanupFailure("thumbnail", post.Thumbnail, err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(postID))
	return nil
}
