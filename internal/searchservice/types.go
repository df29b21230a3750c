package searchservice

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/openclassware/blogd/internal/userservice"
)

// Application is the search domain this engine answers for. Callers carrying
// an application filter that does not name it get an empty result without any
// store access.
const Application = "blog"

const (
	DomainBlog = "blog"
	DomainPost = "post"
)

type Config struct {
	Enabled        bool
	Domains        []string
	BlogWordMinLen int
	PostWordMinLen int
}

// Row is a formatted search result keyed by the caller's column names.
type Row map[string]any

// channel is one federated search source. search returns raw documents;
// format reshapes them into rows, swallowing malformed documents.
type channel interface {
	search(ctx context.Context, user *userservice.User, words []string, page, limit int) ([]bson.M, error)
	format(docs []bson.M, columns []string) []Row
}
