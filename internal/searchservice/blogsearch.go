package searchservice

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/userservice"
)

// blogSearcher matches search words against blog titles, restricted to blogs
// the user may read.
type blogSearcher struct {
	db         *mongo.Database
	logger     *slog.Logger
	wordMinLen int
}

func (s *blogSearcher) search(ctx context.Context, user *userservice.User, words []string, page, limit int) ([]bson.M, error) {
	words = filterWords(words, s.wordMinLen)
	if len(words) == 0 {
		return nil, nil
	}

	filter := bson.M{"$and": []bson.M{
		wordsFilter(words, "title"),
		blogservice.ReadableFilter(user),
	}}

	opts := options.Find().
		SetProjection(bson.M{"title": 1, "description": 1, "modified": 1, "author": 1}).
		SetSort(bson.M{"modified": -1}).
		SetLimit(int64(limit))
	if page > 0 {
		opts.SetSkip(int64(page * limit))
	}

	cursor, err := s.db.Collection(common.BlogCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *blogSearcher) format(docs []bson.M, columns []string) []Row {
	rows := make([]Row, 0, len(docs))
	for _, doc := range docs {
		id, err := docID(doc, "_id")
		if err != nil {
			s.logger.Error("dropping blog search results", slog.String("error", err.Error()))
			return []Row{}
		}

		values, err := rowValues(doc, "description", fmt.Sprintf("/blog#/view/%s", id.Hex()))
		if err != nil {
			s.logger.Error("dropping blog search results", slog.String("error", err.Error()))
			return []Row{}
		}

		rows = append(rows, toRow(values, columns))
	}
	return rows
}
