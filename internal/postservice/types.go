package postservice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openclassware/blogd/internal/blogservice"
)

type State string

const (
	StateDraft     State = "DRAFT"
	StateSubmitted State = "SUBMITTED"
	StatePublished State = "PUBLISHED"
)

// Comment lives inside its post document; deleting the post removes its
// comments with it. Comments start unpublished and stay hidden from
// non-managers until a manager publishes them.
type Comment struct {
	ID        string             `bson:"id" json:"id"`
	Comment   string             `bson:"comment" json:"comment"`
	Author    blogservice.Author `bson:"author" json:"author"`
	Published bool               `bson:"published" json:"published"`
	Created   time.Time          `bson:"created" json:"created"`
}

type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BlogID   primitive.ObjectID `bson:"blogId" json:"blogId"`
	Title    string             `bson:"title" json:"title"`
	// Content is stored in Markdown format.
	Content  string             `bson:"content" json:"content"`
	Author   blogservice.Author `bson:"author" json:"author"`
	State    State              `bson:"state" json:"state"`
	Views    int                `bson:"views" json:"views"`
	Comments []Comment          `bson:"comments,omitempty" json:"comments,omitempty"`
	Created  time.Time          `bson:"created" json:"created"`
	Modified time.Time          `bson:"modified" json:"modified"`
}

type PostModel struct {
	db *mongo.Database
}

type PostService struct {
	m          *PostModel
	blogs      *blogservice.BlogService
	pagingSize int
}
