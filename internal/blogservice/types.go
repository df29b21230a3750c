package blogservice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openclassware/blogd/internal/common"
)

type Visibility string

const (
	// VisibilityPublic makes the blog readable by anyone.
	VisibilityPublic Visibility = "PUBLIC"
	// VisibilityProtected restricts the blog to its author and share grantees.
	VisibilityProtected Visibility = "PROTECTED"
	// VisibilityOwner restricts the blog to its author.
	VisibilityOwner Visibility = "OWNER"
)

type PublishType string

const (
	// PublishTypeImmediate lets a submitted post go straight to PUBLISHED.
	PublishTypeImmediate PublishType = "IMMEDIATE"
	// PublishTypeRestraint holds submitted posts for manager approval.
	PublishTypeRestraint PublishType = "RESTRAINT"
)

// ShareLevel is the permission carried by a share grant. Levels imply every
// weaker level: manager > contrib > comment > read.
type ShareLevel string

const (
	LevelRead    ShareLevel = "read"
	LevelComment ShareLevel = "comment"
	LevelContrib ShareLevel = "contrib"
	LevelManager ShareLevel = "manager"
)

type Author struct {
	UserID   string `bson:"userId" json:"userId"`
	Username string `bson:"username" json:"username"`
}

// Share is a single grant; exactly one of UserID and GroupID is set.
type Share struct {
	UserID  string     `bson:"userId,omitempty" json:"userId,omitempty"`
	GroupID string     `bson:"groupId,omitempty" json:"groupId,omitempty"`
	Level   ShareLevel `bson:"level" json:"level"`
}

type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description,omitempty" json:"description"`
	Visibility  Visibility  `bson:"visibility" json:"visibility"`
	PublishType PublishType `bson:"publish-type" json:"publishType"`
	Author      Author      `bson:"author" json:"author"`
	Shared      []Share     `bson:"shared,omitempty" json:"shared,omitempty"`
	Created     time.Time   `bson:"created" json:"created"`
	Modified    time.Time   `bson:"modified" json:"modified"`
}

type BlogModel struct {
	db *mongo.Database
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
