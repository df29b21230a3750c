package searchservice

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/postservice"
	"github.com/openclassware/blogd/internal/userservice"
)

// postSearcher matches search words against published posts in two phases:
// first the set of blogs shared with the user, then the posts themselves.
type postSearcher struct {
	db         *mongo.Database
	logger     *slog.Logger
	wordMinLen int
}

// accessibleBlogIDs resolves the blogs the user owns or is shared into.
// Public blogs are deliberately absent here; post search only covers blogs
// the user has an explicit grant on.
func (s *postSearcher) accessibleBlogIDs(ctx context.Context, user *userservice.User) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := s.db.Collection(common.BlogCollection).Find(ctx, blogservice.SharedWithFilter(user), opts)
	if err != nil {
		return nil, err
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		id, err := docID(doc, "_id")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *postSearcher) search(ctx context.Context, user *userservice.User, words []string, page, limit int) ([]bson.M, error) {
	words = filterWords(words, s.wordMinLen)
	if len(words) == 0 || user.IsAnonymous() {
		return nil, nil
	}

	ids, err := s.accessibleBlogIDs(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	filter := bson.M{"$and": []bson.M{
		wordsFilter(words, "title", "content"),
		{"blogId": bson.M{"$in": ids}},
		{"state": postservice.StatePublished},
	}}

	opts := options.Find().
		SetProjection(bson.M{"title": 1, "content": 1, "blogId": 1, "modified": 1, "author": 1}).
		SetSort(bson.M{"modified": -1}).
		SetLimit(int64(limit))
	if page > 0 {
		opts.SetSkip(int64(page * limit))
	}

	cursor, err := s.db.Collection(common.PostCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *postSearcher) format(docs []bson.M, columns []string) []Row {
	rows := make([]Row, 0, len(docs))
	for _, doc := range docs {
		id, err := docID(doc, "_id")
		if err != nil {
			s.logger.Error("dropping post search results", slog.String("error", err.Error()))
			return []Row{}
		}
		blogID, err := docID(doc, "blogId")
		if err != nil {
			s.logger.Error("dropping post search results", slog.String("error", err.Error()))
			return []Row{}
		}

		values, err := rowValues(doc, "content", fmt.Sprintf("/blog#/view/%s/%s", blogID.Hex(), id.Hex()))
		if err != nil {
			s.logger.Error("dropping post search results", slog.String("error", err.Error()))
			return []Row{}
		}

		rows = append(rows, toRow(values, columns))
	}
	return rows
}
