package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/v1/healthcheck", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "available", body["status"])
}

func TestEditorialFlow(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	// owner creates a protected blog with moderated publishing
	code, _, body := ts.post(t, "/v1/blogs", map[string]string{
		"title":       "Class Blog",
		"description": "Our classroom journal",
		"visibility":  "PROTECTED",
		"publishType": "RESTRAINT",
	}, strptr("owner-token"))
	assert.Equal(t, http.StatusCreated, code)

	blog := body["blog"].(map[string]any)
	blogID := blog["id"].(string)

	// owner grants contrib to the teacher's group
	code, _, _ = ts.put(t, "/v1/blogs/"+blogID+"/shares", strptr("owner-token"), map[string]any{
		"shares": []map[string]string{
			{"groupId": "class-a", "level": "contrib"},
		},
	})
	assert.Equal(t, http.StatusOK, code)

	// a user without a grant cannot write
	code, _, _ = ts.post(t, "/v1/blogs/"+blogID+"/posts", map[string]string{
		"title":   "Sneaky",
		"content": "nope",
	}, strptr("stranger-token"))
	assert.Equal(t, http.StatusUnauthorized, code)

	// the teacher drafts a post
	code, _, body = ts.post(t, "/v1/blogs/"+blogID+"/posts", map[string]string{
		"title":   "Field Trip",
		"content": "We visited the museum.",
	}, strptr("teacher-token"))
	assert.Equal(t, http.StatusOK, code)

	post := body["post"].(map[string]any)
	postID := post["id"].(string)
	assert.Equal(t, "DRAFT", post["state"])

	// the protected blog is invisible to strangers
	code, _, _ = ts.get(t, "/v1/blogs/"+blogID, strptr("stranger-token"))
	assert.Equal(t, http.StatusNotFound, code)

	// submit holds the post for review on a RESTRAINT blog
	code, _, body = ts.put(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/submit", strptr("teacher-token"), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "SUBMITTED", body["state"])

	// contributors may not publish
	code, _, _ = ts.put(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/publish", strptr("teacher-token"), nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// the owner approves
	code, _, body = ts.put(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/publish", strptr("owner-token"), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "PUBLISHED", body["state"])

	// published post is readable by any grantee
	code, _, body = ts.get(t, "/v1/blogs/"+blogID+"/posts/"+postID, strptr("teacher-token"))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "PUBLISHED", body["post"].(map[string]any)["state"])

	// comments start unpublished and invisible to non-managers
	code, _, body = ts.post(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/comments", map[string]string{
		"comment": "Great trip!",
	}, strptr("teacher-token"))
	assert.Equal(t, http.StatusOK, code)
	commentID := body["comment"].(map[string]any)["id"].(string)

	code, _, body = ts.get(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/comments", strptr("teacher-token"))
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["comments"])

	code, _, _ = ts.put(t, "/v1/blogs/"+blogID+"/comments/"+commentID+"/publish", strptr("owner-token"), nil)
	assert.Equal(t, http.StatusOK, code)

	code, _, body = ts.get(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/comments", strptr("teacher-token"))
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["comments"], 1)

	// a contributor may retract their own post, and retracting twice is a
	// no-op the second time
	code, _, body = ts.put(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/unpublish", strptr("teacher-token"), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "DRAFT", body["state"])

	code, _, body = ts.put(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/unpublish", strptr("owner-token"), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "DRAFT", body["state"])

	// delete removes the post and its comments
	code, _, _ = ts.delete(t, "/v1/blogs/"+blogID+"/posts/"+postID, strptr("teacher-token"))
	assert.Equal(t, http.StatusNoContent, code)

	code, _, _ = ts.get(t, "/v1/blogs/"+blogID+"/posts/"+postID, strptr("owner-token"))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateBlogValidation(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, _ := ts.post(t, "/v1/blogs", map[string]string{"description": "no title"}, strptr("owner-token"))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _, _ = ts.post(t, "/v1/blogs", map[string]string{"title": "Anon"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSearchEndpoint(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.post(t, "/v1/blogs", map[string]string{
		"title":       "Ocean Life",
		"visibility":  "PUBLIC",
		"publishType": "IMMEDIATE",
	}, strptr("owner-token"))
	assert.Equal(t, http.StatusCreated, code)
	blogID := body["blog"].(map[string]any)["id"].(string)

	code, _, body = ts.post(t, "/v1/blogs/"+blogID+"/posts", map[string]string{
		"title":   "Ocean Trip",
		"content": "We sailed far.",
	}, strptr("owner-token"))
	assert.Equal(t, http.StatusOK, code)
	postID := body["post"].(map[string]any)["id"].(string)

	code, _, _ = ts.put(t, "/v1/blogs/"+blogID+"/posts/"+postID+"/submit", strptr("owner-token"), nil)
	assert.Equal(t, http.StatusOK, code)

	code, _, body = ts.get(t, "/v1/search?q=ocean", strptr("owner-token"))
	assert.Equal(t, http.StatusOK, code)

	results := body["results"].([]any)
	assert.Len(t, results, 2)
	assert.Equal(t, "Ocean Life", results[0].(map[string]any)["title"])
	assert.Equal(t, "Ocean Trip", results[1].(map[string]any)["title"])

	code, _, _ = ts.get(t, "/v1/search", strptr("owner-token"))
	assert.Equal(t, http.StatusBadRequest, code)
}
