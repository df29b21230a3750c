package postservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/userservice"
)

var (
	// ErrInvalidTransition reports a state change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrNotPermitted reports an operation the user lacks rights for.
	ErrNotPermitted = errors.New("operation not permitted")
)

func NewPostService(db *mongo.Database, blogs *blogservice.BlogService, pagingSize int) *PostService {
	if pagingSize <= 0 {
		pagingSize = 30
	}
	return &PostService{m: newPostModel(db), blogs: blogs, pagingSize: pagingSize}
}

// getBlog loads the parent blog, folding its absence into this package's
// not-found error.
func (s *PostService) getBlog(ctx context.Context, blogID string) (*blogservice.Blog, error) {
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, blogservice.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return blog, nil
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create creates a post inside the blog. Every post starts life as a draft.
func (s *PostService) Create(ctx context.Context, blogID string, req *CreatePostRequest, user *userservice.User) (*Post, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.getBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &Post{
		BlogID:   blog.ID,
		Title:    req.Title,
		Content:  sanitizeContent(req.Content),
		Author:   blogservice.Author{UserID: user.ID, Username: user.Username},
		State:    StateDraft,
		Created:  now,
		Modified: now,
	}

	if err := s.m.insert(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Update overwrites the post's content fields. The state is untouched.
func (s *PostService) Update(ctx context.Context, blogID, postID string, req *UpdatePostRequest) error {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	if !v.Valid() {
		return v.ValidationError()
	}

	oid, err := blogservice.ParseID(postID)
	if err != nil {
		return ErrRecordNotFound
	}

	set := bson.M{
		"title":    req.Title,
		"content":  sanitizeContent(req.Content),
		"modified": time.Now().UTC(),
	}

	return s.m.updatePost(ctx, oid, set)
}

// Delete removes the post permanently, its comments with it.
func (s *PostService) Delete(ctx context.Context, blogID, postID string) error {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	if !v.Valid() {
		return v.ValidationError()
	}

	oid, err := blogservice.ParseID(postID)
	if err != nil {
		return ErrRecordNotFound
	}

	return s.m.deletePost(ctx, oid)
}

// Get returns the post when the user may see it in its current state.
// Unpublished comments are stripped for non-managers.
func (s *PostService) Get(ctx context.Context, blogID, postID string, user *userservice.User, stateFilter State) (*Post, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	validateState(v, stateFilter)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.getBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	boid, poid, err := parsePair(blogID, postID)
	if err != nil {
		return nil, err
	}

	post, err := s.m.getPost(ctx, boid, poid)
	if err != nil {
		return nil, err
	}

	if !CanReadPost(user, blog, post.State, stateFilter) {
		return nil, ErrRecordNotFound
	}

	// reads by anyone but the author count as a view of the published post
	if post.State == StatePublished && post.Author.UserID != user.ID {
		if err := s.m.incViews(ctx, poid); err == nil {
			post.Views++
		}
	}

	post.Comments = visibleComments(user, blog, post.Comments)

	return post, nil
}

// List returns a page of the blog's posts, newest first.
func (s *PostService) List(ctx context.Context, blogID string, user *userservice.User, page *int, stateFilter State) ([]Post, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateState(v, stateFilter)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.getBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if !blogservice.CanRead(user, blog) {
		return nil, ErrRecordNotFound
	}

	p := 0
	if page != nil && *page > 0 {
		p = *page
	}

	posts, err := s.m.getPosts(ctx, blog.ID, listStates(user, blog, stateFilter), p, s.pagingSize)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Comments = visibleComments(user, blog, posts[i].Comments)
	}

	return posts, nil
}

// Submit moves a draft into review. Blogs publishing immediately skip review:
// the post lands in PUBLISHED and the caller is expected to branch its
// notification on the returned state.
func (s *PostService) Submit(ctx context.Context, blogID, postID string, user *userservice.User) (State, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	blog, err := s.getBlog(ctx, blogID)
	if err != nil {
		return "", err
	}

	target := submitState(blog.PublishType)

	return s.transition(ctx, postID, []State{StateDraft}, target)
}

// Publish approves a post. Managers may publish straight from draft.
func (s *PostService) Publish(ctx context.Context, blogID, postID string) (State, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	return s.transition(ctx, postID, sourcesFor(StatePublished), StatePublished)
}

// Unpublish retracts a published post back to draft. Retracting a post that
// is not published is a no-op reporting the current state.
func (s *PostService) Unpublish(ctx context.Context, blogID, postID string) (State, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	oid, err := blogservice.ParseID(postID)
	if err != nil {
		return "", ErrRecordNotFound
	}

	matched, err := s.m.setState(ctx, oid, sourcesFor(StateDraft), StateDraft, bson.M{"state": StateDraft, "modified": time.Now().UTC()})
	if err != nil {
		return "", err
	}
	if matched {
		return StateDraft, nil
	}

	post, err := s.m.getPostByID(ctx, oid)
	if err != nil {
		return "", err
	}

	return post.State, nil
}

// transition applies a guarded state change and reports the resulting state.
func (s *PostService) transition(ctx context.Context, postID string, from []State, to State) (State, error) {
	oid, err := blogservice.ParseID(postID)
	if err != nil {
		return "", ErrRecordNotFound
	}

	matched, err := s.m.setState(ctx, oid, from, to, bson.M{"state": to, "modified": time.Now().UTC()})
	if err != nil {
		return "", err
	}
	if matched {
		return to, nil
	}

	post, err := s.m.getPostByID(ctx, oid)
	if err != nil {
		return "", err
	}

	if post.State == to {
		// lost a race against an identical transition; same outcome
		return to, nil
	}

	return "", ErrInvalidTransition
}

// AddComment appends a comment to the post. Comments start unpublished and
// wait for a manager.
func (s *PostService) AddComment(ctx context.Context, blogID, postID, comment string, user *userservice.User) (*Comment, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	validateComment(v, comment)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	boid, poid, err := parsePair(blogID, postID)
	if err != nil {
		return nil, err
	}

	if _, err := s.m.getPost(ctx, boid, poid); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:      uuid.NewString(),
		Comment: comment,
		Author:  blogservice.Author{UserID: user.ID, Username: user.Username},
		Created: time.Now().UTC(),
	}

	if err := s.m.pushComment(ctx, poid, c); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteComment removes a comment permanently. Only its author and the
// blog's managers may do so.
func (s *PostService) DeleteComment(ctx context.Context, blogID, commentID string, user *userservice.User) error {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, commentID, "commentId")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.getBlog(ctx, blogID)
	if err != nil {
		return err
	}

	post, err := s.m.findPostByComment(ctx, blog.ID, commentID)
	if err != nil {
		return err
	}

	if !blogservice.IsManager(user, blog) {
		authored := false
		for _, c := range post.Comments {
			if c.ID == commentID && c.Author.UserID == user.ID {
				authored = true
				break
			}
		}
		if !authored {
			return ErrNotPermitted
		}
	}

	return s.m.pullComment(ctx, post.ID, commentID)
}

// ListComments returns the post's comments; unpublished ones only for the
// blog's owner and managers.
func (s *PostService) ListComments(ctx context.Context, blogID, postID string, user *userservice.User) ([]Comment, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, postID, "postId")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.getBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	boid, poid, err := parsePair(blogID, postID)
	if err != nil {
		return nil, err
	}

	post, err := s.m.getPost(ctx, boid, poid)
	if err != nil {
		return nil, err
	}

	return visibleComments(user, blog, post.Comments), nil
}

// PublishComment flips the comment visible to everyone who can see the post.
func (s *PostService) PublishComment(ctx context.Context, blogID, commentID string) error {
	v := common.NewValidator()
	validateID(v, blogID, "blogId")
	validateID(v, commentID, "commentId")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.getBlog(ctx, blogID)
	if err != nil {
		return err
	}

	return s.m.publishComment(ctx, blog.ID, commentID)
}

func parsePair(blogID, postID string) (primitive.ObjectID, primitive.ObjectID, error) {
	boid, err := blogservice.ParseID(blogID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrRecordNotFound
	}
	poid, err := blogservice.ParseID(postID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrRecordNotFound
	}
	return boid, poid, nil
}
