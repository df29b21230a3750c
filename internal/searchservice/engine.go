package searchservice

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/openclassware/blogd/internal/userservice"
)

// Engine fans a query out to the enabled channels concurrently and
// concatenates their rows, blog rows first.
type Engine struct {
	logger *slog.Logger
	blogs  channel
	posts  channel
}

func NewEngine(db *mongo.Database, cfg Config, logger *slog.Logger) *Engine {
	e := &Engine{logger: logger}
	if !cfg.Enabled {
		return e
	}

	for _, d := range cfg.Domains {
		switch d {
		case DomainBlog:
			e.blogs = &blogSearcher{db: db, logger: logger, wordMinLen: cfg.BlogWordMinLen}
		case DomainPost:
			e.posts = &postSearcher{db: db, logger: logger, wordMinLen: cfg.PostWordMinLen}
		}
	}
	return e
}

// Search runs the enabled channels and merges their results. A disabled
// channel counts as an immediate empty success; a failing channel fails the
// whole search.
func (e *Engine) Search(ctx context.Context, user *userservice.User, appFilter, words []string, page, limit int, columns []string) ([]Row, error) {
	if !containsApp(appFilter) {
		return []Row{}, nil
	}

	var (
		blogRows []Row
		postRows []Row
	)

	g, ctx := errgroup.WithContext(ctx)

	if e.blogs != nil {
		g.Go(func() error {
			docs, err := e.blogs.search(ctx, user, words, page, limit)
			if err != nil {
				return err
			}
			blogRows = e.blogs.format(docs, columns)
			return nil
		})
	}

	if e.posts != nil {
		g.Go(func() error {
			docs, err := e.posts.search(ctx, user, words, page, limit)
			if err != nil {
				return err
			}
			postRows = e.posts.format(docs, columns)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(blogRows)+len(postRows))
	rows = append(rows, blogRows...)
	rows = append(rows, postRows...)
	return rows, nil
}

func containsApp(appFilter []string) bool {
	for _, a := range appFilter {
		if a == Application {
			return true
		}
	}
	return false
}
