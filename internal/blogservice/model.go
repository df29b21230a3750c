package blogservice

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openclassware/blogd/internal/common"
)

var ErrRecordNotFound = errors.New("record not found")

func newBlogModel(db *mongo.Database) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) blogs() *mongo.Collection {
	return m.db.Collection(common.BlogCollection)
}

// ParseID turns a path identifier into an object id. Anything that is not a
// valid id cannot name a stored record, so it reports ErrRecordNotFound.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrRecordNotFound
	}
	return oid, nil
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	res, err := m.blogs().InsertOne(ctx, blog)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		blog.ID = oid
	}

	return nil
}

func (m *BlogModel) getBlogByID(ctx context.Context, id string) (*Blog, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var blog Blog
	err = m.blogs().FindOne(ctx, bson.M{"_id": oid}).Decode(&blog)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, id string, set bson.M) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := m.blogs().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// deleteBlog removes the blog and every post that belongs to it.
func (m *BlogModel) deleteBlog(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := m.blogs().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}

	_, err = m.db.Collection(common.PostCollection).DeleteMany(ctx, bson.M{"blogId": oid})
	return err
}

// getBlogs returns blogs matching the filter sorted by modified time,
// newest first.
func (m *BlogModel) getBlogs(ctx context.Context, filter bson.M, limit, offset int) ([]Blog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "modified", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := m.blogs().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}
