package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/postservice"
	"github.com/openclassware/blogd/internal/searchservice"
	"github.com/openclassware/blogd/internal/timelineservice"
)

type createBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	PublishType string `json:"publishType"`
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input createBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	blog, err := app.blogService.CreateBlog(r.Context(), &blogservice.CreateBlogRequest{
		Title:       input.Title,
		Description: input.Description,
		Visibility:  blogservice.Visibility(input.Visibility),
		PublishType: blogservice.PublishType(input.PublishType),
	}, user)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), blogID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !blogservice.CanRead(app.getUserContext(r), blog) {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input createBlogRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogService.UpdateBlog(r.Context(), blogID, &blogservice.UpdateBlogRequest{
		Title:       input.Title,
		Description: input.Description,
		Visibility:  blogservice.Visibility(input.Visibility),
		PublishType: blogservice.PublishType(input.PublishType),
	})
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog updated"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type shareRequest struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	Level   string `json:"level"`
}

func (app *application) updateSharesHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input struct {
		Shares []shareRequest `json:"shares"`
	}

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	shares := make([]blogservice.Share, 0, len(input.Shares))
	for _, s := range input.Shares {
		shares = append(shares, blogservice.Share{
			UserID:  s.UserID,
			GroupID: s.GroupID,
			Level:   blogservice.ShareLevel(s.Level),
		})
	}

	err = app.blogService.UpdateShares(r.Context(), blogID, shares)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "shares updated"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), blogID)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, err := app.blogService.ListBlogs(r.Context(), app.getUserContext(r), limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input createPostRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.Create(r.Context(), blogID, &postservice.CreatePostRequest{
		Title:   input.Title,
		Content: input.Content,
	}, app.getUserContext(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input createPostRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.Update(r.Context(), blogID, postID, &postservice.UpdatePostRequest{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "post updated"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.Delete(r.Context(), blogID, postID)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) getPostHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	stateFilter := postservice.State(r.URL.Query().Get("state"))

	post, err := app.postService.Get(r.Context(), blogID, postID, app.getUserContext(r), stateFilter)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	page, err := app.readPageParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	stateFilter := postservice.State(r.URL.Query().Get("state"))

	posts, err := app.postService.List(r.Context(), blogID, app.getUserContext(r), page, stateFilter)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) submitPostHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	state, err := app.postService.Submit(r.Context(), blogID, postID, app.getUserContext(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	switch state {
	case postservice.StatePublished:
		app.notifier.NotifyPostPublished(r.Context(), app.timelineEvent(r, blogID, postID))
	case postservice.StateSubmitted:
		app.notifier.NotifyPostSubmitted(r.Context(), app.timelineEvent(r, blogID, postID))
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"state": state}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) publishPostHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	state, err := app.postService.Publish(r.Context(), blogID, postID)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	app.notifier.NotifyPostPublished(r.Context(), app.timelineEvent(r, blogID, postID))

	err = app.writeJSON(w, http.StatusOK, envelope{"state": state}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) unpublishPostHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	state, err := app.postService.Unpublish(r.Context(), blogID, postID)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"state": state}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input addCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comment, err := app.postService.AddComment(r.Context(), blogID, postID, input.Comment, app.getUserContext(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	app.notifier.NotifyCommentCreated(r.Context(), app.timelineEvent(r, blogID, postID))

	err = app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	commentID, err := app.readStringParam(r, "commentId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.DeleteComment(r.Context(), blogID, commentID, app.getUserContext(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "comment deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	blogID, postID, err := app.readPairParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comments, err := app.postService.ListComments(r.Context(), blogID, postID, app.getUserContext(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) publishCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	commentID, err := app.readStringParam(r, "commentId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.PublishComment(r.Context(), blogID, commentID)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "comment published"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

var defaultSearchColumns = []string{"title", "description", "modified", "ownerDisplayName", "ownerId", "url"}

func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	words := strings.Fields(query.Get("q"))
	if len(words) == 0 {
		app.badRequestErrorResponse(w, r, errors.New("missing q parameter"))
		return
	}

	page := 0
	if p, err := app.readPageParam(r); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	} else if p != nil {
		page = *p
	}

	apps := []string{searchservice.Application}
	if query.Get("apps") != "" {
		apps = strings.Split(query.Get("apps"), ",")
	}

	rows, err := app.searchEngine.Search(r.Context(), app.getUserContext(r), apps, words, page, app.config.PagingSize, defaultSearchColumns)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"results": rows}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// blogErrorResponse maps blog service failures onto HTTP responses.
func (app *application) blogErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blogservice.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.As(err, &common.ValidationError{}):
		validationErr := err.(common.ValidationError)
		app.failedValidationErrorResponse(w, r, validationErr.Errors)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// postErrorResponse maps post service failures onto HTTP responses.
func (app *application) postErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, postservice.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, postservice.ErrInvalidTransition):
		app.badRequestErrorResponse(w, r, err)
	case errors.Is(err, postservice.ErrNotPermitted):
		app.unAuthorizedErrorResponse(w, r)
	case errors.As(err, &common.ValidationError{}):
		validationErr := err.(common.ValidationError)
		app.failedValidationErrorResponse(w, r, validationErr.Errors)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) readPairParams(r *http.Request) (string, string, error) {
	blogID, err := app.readStringParam(r, "blogId")
	if err != nil {
		return "", "", err
	}

	postID, err := app.readStringParam(r, "postId")
	if err != nil {
		return "", "", err
	}

	return blogID, postID, nil
}

// timelineEvent assembles the notification payload for the acted-on post.
// Title lookups are best-effort; a notification never fails the action.
func (app *application) timelineEvent(r *http.Request, blogID, postID string) timelineservice.Event {
	user := app.getUserContext(r)

	event := timelineservice.Event{
		BlogID:   blogID,
		PostID:   postID,
		UserID:   user.ID,
		Username: user.Username,
		DeepLink: fmt.Sprintf("/blog#/view/%s/%s", blogID, postID),
	}

	if blog, err := app.blogService.GetBlogByID(r.Context(), blogID); err == nil {
		event.BlogTitle = blog.Title
	}
	if post, err := app.postService.Get(r.Context(), blogID, postID, user, ""); err == nil {
		event.PostTitle = post.Title
	}

	return event
}
