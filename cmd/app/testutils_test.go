package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/postservice"
	"github.com/openclassware/blogd/internal/searchservice"
	"github.com/openclassware/blogd/internal/timelineservice"
	"github.com/openclassware/blogd/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	if len(responseBody) > 0 {
		err = json.Unmarshal(responseBody, &envelope)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, res.Header, envelope
}

// testUsers maps bearer tokens to principals. Tokens stand in for the
// platform session service.
var testUsers = map[string]*userservice.User{
	"owner-token":    {ID: "u1", Username: "owner"},
	"reader-token":   {ID: "u2", Username: "reader"},
	"teacher-token":  {ID: "u3", Username: "teacher", GroupIDs: []string{"class-a"}},
	"stranger-token": {ID: "u9", Username: "stranger"},
}

type nopProducer struct{}

func (nopProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

func newTestApplication(t *testing.T) *application {
	db := common.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	blogService := blogservice.NewBlogService(db, cache)
	postService := postservice.NewPostService(db, blogService, 30)

	resolver := userservice.ResolverFunc(func(ctx context.Context, token string) (*userservice.User, error) {
		user, ok := testUsers[token]
		if !ok {
			return nil, userservice.ErrInvalidToken
		}
		return user, nil
	})

	cfg := &Config{
		Environment: "test",
		Version:     "test",
		PagingSize:  30,
	}

	return &application{
		config:       cfg,
		logger:       logger,
		resolver:     resolver,
		access:       blogservice.NewAccessChecker(blogService),
		blogService:  blogService,
		postService:  postService,
		searchEngine: searchservice.NewEngine(db, searchservice.Config{Enabled: true, Domains: []string{searchservice.DomainBlog, searchservice.DomainPost}, BlogWordMinLen: 4, PostWordMinLen: 4}, logger),
		notifier:     timelineservice.NewNotifier(nopProducer{}, logger),
	}
}

func (ts *testServer) post(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) put(t *testing.T, path string, token *string, payload any) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPut, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func strptr(s string) *string {
	return &s
}
