package repository

import (
	"context"

	"gorm.io/gorm"

	"inkpress/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	List(ctx context.Context, offset, limit int) ([]model.Post, error)
	ListByCategory(ctx context.Context, category model.Category) ([]model.Post, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]model.Post, error)
	CountByCreator(ctx context.Context, creatorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts newest-first. A limit of 0 means no limit.
func (r *postRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	q := r.db.WithContext(ctx).Order("updated_at DESC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByCategory(ctx context.Context, category model.Category) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Where("category = ?", category).Order("updated_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByCreator(ctx context.Context, creatorID uint) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByCreator is the single source of truth for per-user post counts.
func (r *postRepository) CountByCreator(ctx context.Context, creatorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("creator_id = ?", creatorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
