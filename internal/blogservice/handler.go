package blogservice

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/userservice"
)

func NewBlogService(db *mongo.Database, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Visibility  Visibility  `json:"visibility"`
	PublishType PublishType `json:"publishType"`
}

// CreateBlog creates a blog owned by the requesting user. Visibility defaults
// to OWNER and publish type to IMMEDIATE when not supplied.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest, user *userservice.User) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateVisibility(v, req.Visibility)
	validatePublishType(v, req.PublishType)
	author := Author{UserID: user.ID, Username: user.Username}
	validateAuthor(v, author)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	now := time.Now().UTC()
	blog := &Blog{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		PublishType: req.PublishType,
		Author:      author,
		Created:     now,
		Modified:    now,
	}
	if blog.Visibility == "" {
		blog.Visibility = VisibilityOwner
	}
	if blog.PublishType == "" {
		blog.PublishType = PublishTypeImmediate
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// GetBlogByID returns a blog by its ID, consulting the cache first.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	v := common.NewValidator()
	validateID(v, id, "blogId")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		if blog, ok := cached.(*Blog); ok {
			return blog, nil
		}
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

type UpdateBlogRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Visibility  Visibility  `json:"visibility"`
	PublishType PublishType `json:"publishType"`
}

func (s *BlogService) UpdateBlog(ctx context.Context, id string, req *UpdateBlogRequest) error {
	v := common.NewValidator()
	validateID(v, id, "blogId")
	validateTitle(v, req.Title)
	validateVisibility(v, req.Visibility)
	validatePublishType(v, req.PublishType)
	if !v.Valid() {
		return v.ValidationError()
	}

	set := bson.M{
		"title":       req.Title,
		"description": req.Description,
		"modified":    time.Now().UTC(),
	}
	if req.Visibility != "" {
		set["visibility"] = req.Visibility
	}
	if req.PublishType != "" {
		set["publish-type"] = req.PublishType
	}

	if err := s.m.updateBlog(ctx, id, set); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id))

	return nil
}

// UpdateShares replaces the blog's share grants.
func (s *BlogService) UpdateShares(ctx context.Context, id string, shares []Share) error {
	v := common.NewValidator()
	validateID(v, id, "blogId")
	validateShares(v, shares)
	if !v.Valid() {
		return v.ValidationError()
	}

	set := bson.M{
		"shared":   shares,
		"modified": time.Now().UTC(),
	}

	if err := s.m.updateBlog(ctx, id, set); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id))

	return nil
}

// DeleteBlog removes the blog and all of its posts.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	v := common.NewValidator()
	validateID(v, id, "blogId")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteBlog(ctx, id); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id))

	return nil
}

// ListBlogs returns the blogs visible to the user, newest first.
func (s *BlogService) ListBlogs(ctx context.Context, user *userservice.User, limit, offset *int) ([]Blog, error) {
	l, o := 30, 0
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}

	return s.m.getBlogs(ctx, ReadableFilter(user), l, o)
}
