package postservice

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

func newPostModel(db *mongo.Database) *PostModel {
	return &PostModel{db: db}
}

func (m *PostModel) posts() *mongo.Collection {
	return m.db.Collection(common.PostCollection)
}

func (m *PostModel) insert(ctx context.Context, post *Post) error {
	res, err := m.posts().InsertOne(ctx, post)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}

	return nil
}

func (m *PostModel) getPost(ctx context.Context, blogID, postID primitive.ObjectID) (*Post, error) {
	var post Post
	err := m.posts().FindOne(ctx, bson.M{"_id": postID, "blogId": blogID}).Decode(&post)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

func (m *PostModel) updatePost(ctx context.Context, postID primitive.ObjectID, set bson.M) error {
	res, err := m.posts().UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$set": set})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *PostModel) deletePost(ctx context.Context, postID primitive.ObjectID) error {
	res, err := m.posts().DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// getPosts returns the blog's posts in the given states, newest first. Page
// zero reads from the top; later pages skip page*limit documents.
func (m *PostModel) getPosts(ctx context.Context, blogID primitive.ObjectID, states []State, page, limit int) ([]Post, error) {
	filter := bson.M{"blogId": blogID}
	if len(states) > 0 {
		filter["state"] = bson.M{"$in": states}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "modified", Value: -1}}).
		SetLimit(int64(limit))
	if page > 0 {
		opts.SetSkip(int64(page * limit))
	}

	cursor, err := m.posts().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// setState moves the post into the target state only when its current state
// is one of the permitted sources. The guard doubles as a compare-and-swap:
// of two racing transitions, only one matches.
func (m *PostModel) setState(ctx context.Context, postID primitive.ObjectID, from []State, to State, modified bson.M) (bool, error) {
	filter := bson.M{"_id": postID, "state": bson.M{"$in": from}}

	res, err := m.posts().UpdateOne(ctx, filter, bson.M{"$set": modified})
	if err != nil {
		return false, err
	}

	return res.MatchedCount > 0, nil
}

func (m *PostModel) incViews(ctx context.Context, postID primitive.ObjectID) error {
	_, err := m.posts().UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (m *PostModel) getPostByID(ctx context.Context, postID primitive.ObjectID) (*Post, error) {
	var post Post
	err := m.posts().FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

func (m *PostModel) pushComment(ctx context.Context, postID primitive.ObjectID, c *Comment) error {
	res, err := m.posts().UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// findPostByComment resolves the post holding the comment within the blog.
func (m *PostModel) findPostByComment(ctx context.Context, blogID primitive.ObjectID, commentID string) (*Post, error) {
	var post Post
	err := m.posts().FindOne(ctx, bson.M{"blogId": blogID, "comments.id": commentID}).Decode(&post)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

func (m *PostModel) pullComment(ctx context.Context, postID primitive.ObjectID, commentID string) error {
	res, err := m.posts().UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}})
	if err != nil {
		return err
	}

	if res.ModifiedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *PostModel) publishComment(ctx context.Context, blogID primitive.ObjectID, commentID string) error {
	filter := bson.M{"blogId": blogID, "comments.id": commentID}

	res, err := m.posts().UpdateOne(ctx, filter, bson.M{"$set": bson.M{"comments.$.published": true}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}
