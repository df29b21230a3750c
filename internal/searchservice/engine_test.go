package searchservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/postservice"
	"github.com/openclassware/blogd/internal/userservice"
)

type fakeChannel struct {
	rows     []Row
	err      error
	searches int
}

func (f *fakeChannel) search(ctx context.Context, user *userservice.User, words []string, page, limit int) ([]bson.M, error) {
	f.searches++
	return nil, f.err
}

func (f *fakeChannel) format(docs []bson.M, columns []string) []Row {
	return f.rows
}

func TestSearchMergesBlogRowsFirst(t *testing.T) {
	e := &Engine{
		logger: testLogger(),
		blogs:  &fakeChannel{rows: []Row{{"title": "Ocean Life"}}},
		posts:  &fakeChannel{rows: []Row{{"title": "Ocean Trip"}}},
	}

	rows, err := e.Search(context.Background(), &userservice.AnonymousUser, []string{Application}, []string{"ocean"}, 0, 30, testColumns)

	assert.NoError(t, err)
	assert.Equal(t, []Row{{"title": "Ocean Life"}, {"title": "Ocean Trip"}}, rows)
}

func TestSearchAppFilterGate(t *testing.T) {
	blogs := &fakeChannel{rows: []Row{{"title": "Ocean Life"}}}
	e := &Engine{logger: testLogger(), blogs: blogs}

	rows, err := e.Search(context.Background(), &userservice.AnonymousUser, []string{"wiki"}, []string{"ocean"}, 0, 30, testColumns)

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, blogs.searches)
}

func TestSearchDisabledChannel(t *testing.T) {
	blogs := &fakeChannel{rows: []Row{{"title": "Ocean Life"}}}
	e := &Engine{logger: testLogger(), blogs: blogs}

	rows, err := e.Search(context.Background(), &userservice.AnonymousUser, []string{Application}, []string{"ocean"}, 0, 30, testColumns)

	assert.NoError(t, err)
	assert.Equal(t, []Row{{"title": "Ocean Life"}}, rows)
	assert.Equal(t, 1, blogs.searches)
}

func TestSearchChannelFailureFailsWholeSearch(t *testing.T) {
	broken := errors.New("store unavailable")
	e := &Engine{
		logger: testLogger(),
		blogs:  &fakeChannel{rows: []Row{{"title": "Ocean Life"}}},
		posts:  &fakeChannel{err: broken},
	}

	rows, err := e.Search(context.Background(), &userservice.AnonymousUser, []string{Application}, []string{"ocean"}, 0, 30, testColumns)

	assert.ErrorIs(t, err, broken)
	assert.Nil(t, rows)
}

func TestNewEngineDomains(t *testing.T) {
	e := NewEngine(nil, Config{Enabled: true, Domains: []string{DomainBlog}}, testLogger())
	assert.NotNil(t, e.blogs)
	assert.Nil(t, e.posts)

	e = NewEngine(nil, Config{Enabled: false, Domains: []string{DomainBlog, DomainPost}}, testLogger())
	assert.Nil(t, e.blogs)
	assert.Nil(t, e.posts)
}

func TestSearchFederation(t *testing.T) {
	db := common.TestDB(t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	blogs := blogservice.NewBlogService(db, cache)
	posts := postservice.NewPostService(db, blogs, 30)
	engine := NewEngine(db, Config{Enabled: true, Domains: []string{DomainBlog, DomainPost}, BlogWordMinLen: 4, PostWordMinLen: 4}, testLogger())

	ctx := context.Background()
	owner := &userservice.User{ID: "u1", Username: "alice"}

	blog, err := blogs.CreateBlog(ctx, &blogservice.CreateBlogRequest{
		Title:       "Ocean Life",
		Visibility:  blogservice.VisibilityPublic,
		PublishType: blogservice.PublishTypeImmediate,
	}, owner)
	assert.NoError(t, err)

	post, err := posts.Create(ctx, blog.ID.Hex(), &postservice.CreatePostRequest{Title: "Ocean Trip", Content: "We sailed far"}, owner)
	assert.NoError(t, err)
	_, err = posts.Submit(ctx, blog.ID.Hex(), post.ID.Hex(), owner)
	assert.NoError(t, err)

	// stays a draft, must never surface in search
	_, err = posts.Create(ctx, blog.ID.Hex(), &postservice.CreatePostRequest{Title: "Ocean Draft", Content: "Unfinished"}, owner)
	assert.NoError(t, err)

	t.Run("owner sees blog row before post row", func(t *testing.T) {
		rows, err := engine.Search(ctx, owner, []string{Application}, []string{"ocean"}, 0, 30, testColumns)
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Ocean Life", rows[0]["title"])
		assert.Equal(t, "Ocean Trip", rows[1]["title"])
	})

	t.Run("anonymous user only sees the public blog", func(t *testing.T) {
		rows, err := engine.Search(ctx, &userservice.AnonymousUser, []string{Application}, []string{"ocean"}, 0, 30, testColumns)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Ocean Life", rows[0]["title"])
	})

	t.Run("short words are ignored", func(t *testing.T) {
		rows, err := engine.Search(ctx, owner, []string{Application}, []string{"sea"}, 0, 30, testColumns)
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("prefix match is rejected", func(t *testing.T) {
		rows, err := engine.Search(ctx, owner, []string{Application}, []string{"ocea"}, 0, 30, testColumns)
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})
}
