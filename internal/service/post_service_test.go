package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"inkpress/internal/errors"
	"inkpress/internal/model"
	"inkpress/internal/storage"
)

func newPostService(t *testing.T, posts *MockPostRepository) (PostService, *storage.FileStore) {
	t.Helper()
	files, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return NewPostService(posts, files, nilCache), files
}

func uploadCount(t *testing.T, files *storage.FileStore) int {
	t.Helper()
	entries, err := os.ReadDir(files.Dir())
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	return len(entries)
}

func TestCreatePost_MissingThumbnail(t *testing.T) {
	posts := new(MockPostRepository)
	svc, files := newPostService(t, posts)

	_, err := svc.CreatePost(context.Background(), 1, "Title", model.CategoryFood, "A longer description", nil)

	assert.ErrorIs(t, err, errors.ErrFileRequired)
	assert.Zero(t, uploadCount(t, files))
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_MissingFields(t *testing.T) {
	posts := new(MockPostRepository)
	svc, files := newPostService(t, posts)

	_, err := svc.CreatePost(context.Background(), 1, "", model.CategoryFood, "desc", makeFileHeader(t, "a.png", 10))

	assert.ErrorIs(t, err, errors.ErrMissingFields)
	assert.Zero(t, uploadCount(t, files))
}

func TestCreatePost_InvalidCategory(t *testing.T) {
	posts := new(MockPostRepository)
	svc, files := newPostService(t, posts)

	_, err := svc.CreatePost(context.Background(), 1, "Title", "Gardening", "A longer description", makeFileHeader(t, "a.png", 10))

	assert.ErrorIs(t, err, errors.ErrInvalidCategory)
	assert.Zero(t, uploadCount(t, files))
}

func TestCreatePost_ThumbnailTooLarge(t *testing.T) {
	posts := new(MockPostRepository)
	svc, files := newPostService(t, posts)

	_, err := svc.CreatePost(context.Background(), 1, "Title", model.CategoryFood, "A longer description",
		makeFileHeader(t, "big.png", MaxThumbnailSize+1))

	assert.ErrorIs(t, err, errors.ErrFileTooLarge)
	assert.Zero(t, uploadCount(t, files))
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_Success(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
	svc, files := newPostService(t, posts)

	post, err := svc.CreatePost(context.Background(), 9, "Title", model.CategoryTravel, "A longer description",
		makeFileHeader(t, "beach.jpg", 1000))

	assert.NoError(t, err)
	assert.Equal(t, uint(9), post.CreatorID)
	assert.True(t, strings.HasSuffix(post.Thumbnail, ".jpg"))
	assert.Equal(t, 1, uploadCount(t, files))
	posts.AssertExpectations(t)
}

func TestCreatePost_InsertFailureRemovesFile(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(gorm.ErrInvalidData)
	svc, files := newPostService(t, posts)

	_, err := svc.CreatePost(context.Background(), 1, "Title", model.CategoryArt, "A longer description",
		makeFileHeader(t, "a.png", 10))

	assert.Error(t, err)
	assert.Zero(t, uploadCount(t, files))
}

func TestGetPost_NotFound(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
	svc, _ := newPostService(t, posts)

	_, err := svc.GetPost(context.Background(), 5)

	assert.ErrorIs(t, err, errors.ErrPostNotFound)
}

func TestListByCategory_InvalidCategory(t *testing.T) {
	posts := new(MockPostRepository)
	svc, _ := newPostService(t, posts)

	_, err := svc.ListByCategory(context.Background(), "Sports")

	assert.ErrorIs(t, err, errors.ErrInvalidCategory)
}

func TestListPosts_Pagination(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("List", mock.Anything, 10, 5).Return([]model.Post{}, nil)
	svc, _ := newPostService(t, posts)

	_, err := svc.ListPosts(context.Background(), 3, 5)

	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestUpdatePost_NotCreator(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, uint(3)).Return(&model.Post{ID: 3, CreatorID: 1}, nil)
	svc, _ := newPostService(t, posts)

	_, err := svc.UpdatePost(context.Background(), 2, 3, "Title", model.CategoryFood, "A longer description", nil)

	assert.ErrorIs(t, err, errors.ErrNotCreator)
	posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePost_ShortDescription(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, uint(3)).Return(&model.Post{ID: 3, CreatorID: 1}, nil)
	svc, _ := newPostService(t, posts)

	_, err := svc.UpdatePost(context.Background(), 1, 3, "Title", model.CategoryFood, "too short", nil)

	assert.ErrorIs(t, err, errors.ErrDescriptionTooShort)
	posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePost_TextOnlyKeepsThumbnail(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, uint(3)).Return(&model.Post{
		ID: 3, CreatorID: 1, Thumbnail: "existing.png",
	}, nil)
	posts.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
	svc, _ := newPostService(t, posts)

	post, err := svc.UpdatePost(context.Background(), 1, 3, "New Title", model.CategoryMusic, "A longer description", nil)

	assert.NoError(t, err)
	assert.Equal(t, "existing.png", post.Thumbnail)
	assert.Equal(t, "New Title", post.Title)
	posts.AssertExpectations(t)
}

func TestUpdatePost_NewThumbnailReplacesOld(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
	svc, files := newPostService(t, posts)

	// Place the old thumbnail on disk so replacement has something to remove.
	old, err := files.Save(makeFileHeader(t, "old.png", 10), MaxThumbnailSize)
	assert.NoError(t, err)
	posts.On("FindByID", mock.Anything, uint(3)).Return(&model.Post{
		ID: 3, CreatorID: 1, Thumbnail: old,
	}, nil)

	post, err := svc.UpdatePost(context.Background(), 1, 3, "Title", model.CategoryFood, "A longer description",
		makeFileHeader(t, "new.jpg", 10))

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(post.Thumbnail, ".jpg"))
	assert.NotEqual(t, old, post.Thumbnail)
	// Old file gone, new file present.
	_, statErr := os.Stat(filepath.Join(files.Dir(), old))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, 1, uploadCount(t, files))
}

func TestDeletePost_NotFound(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)
	svc, _ := newPostService(t, posts)

	err := svc.DeletePost(context.Background(), 1, 8)

	assert.ErrorIs(t, err, errors.ErrPostNotFound)
}

func TestDeletePost_NotCreator(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, uint(8)).Return(&model.Post{ID: 8, CreatorID: 1}, nil)
	svc, _ := newPostService(t, posts)

	err := svc.DeletePost(context.Background(), 2, 8)

	assert.ErrorIs(t, err, errors.ErrNotCreator)
	posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePost_RemovesRowThenFile(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("Delete", mock.Anything, uint(8)).Return(nil)
	svc, files := newPostService(t, posts)

	name, err := files.Save(makeFileHeader(t, "pic.png", 10), MaxThumbnailSize)
	assert.NoError(t, err)
	posts.On("FindByID", mock.Anything, uint(8)).Return(&model.Post{
		ID: 8, CreatorID: 1, Thumbnail: name,
	}, nil)

	err = svc.DeletePost(context.Background(), 1, 8)

	assert.NoError(t, err)
	assert.Zero(t, uploadCount(t, files))
	posts.AssertExpectations(t)
}
