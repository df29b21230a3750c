package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/openclassware/blogd/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/v1/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogId", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:blogId", app.requireCapability(app.updateBlogHandler, userservice.CapManager))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:blogId", app.requireCapability(app.deleteBlogHandler, userservice.CapManager))
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:blogId/shares", app.requireCapability(app.updateSharesHandler, userservice.CapManager))

	// post service
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogId/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:blogId/posts", app.requireCapability(app.createPostHandler, userservice.CapContrib))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogId/posts/:postId", app.getPostHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:blogId/posts/:postId", app.requireCapability(app.updatePostHandler, userservice.CapContrib))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:blogId/posts/:postId", app.requireCapability(app.deletePostHandler, userservice.CapContrib))
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:blogId/posts/:postId/submit", app.requireCapability(app.submitPostHandler, userservice.CapContrib))
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:blogId/posts/:postId/publish", app.requireCapability(app.publishPostHandler, userservice.CapManager))
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:blogId/posts/:postId/unpublish", app.requireCapability(app.unpublishPostHandler, userservice.CapContrib))

	// comments
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogId/posts/:postId/comments", app.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:blogId/posts/:postId/comments", app.requireCapability(app.addCommentHandler, userservice.CapComment))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:blogId/comments/:commentId", app.requireAuthUser(app.deleteCommentHandler))
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:blogId/comments/:commentId/publish", app.requireCapability(app.publishCommentHandler, userservice.CapManager))

	// federated search
	router.HandlerFunc(http.MethodGet, "/v1/search", app.searchHandler)

	return app.recoverPanic(app.logRequest(app.authenticate(router)))
}
