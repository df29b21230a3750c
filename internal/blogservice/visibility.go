package blogservice

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openclassware/blogd/internal/userservice"
)

// CanRead reports whether the user may see the blog at all. A blog is readable
// when it is public, owned by the user, or shared with the user directly or
// through one of the user's groups.
func CanRead(u *userservice.User, b *Blog) bool {
	if b == nil {
		return false
	}
	if b.Visibility == VisibilityPublic {
		return true
	}
	if u.IsAnonymous() {
		return false
	}
	if b.Author.UserID == u.ID {
		return true
	}
	for _, s := range b.Shared {
		if s.UserID != "" && s.UserID == u.ID {
			return true
		}
		if s.GroupID != "" && u.InGroup(s.GroupID) {
			return true
		}
	}
	return false
}

var levelRank = map[ShareLevel]int{
	LevelRead:    1,
	LevelComment: 2,
	LevelContrib: 3,
	LevelManager: 4,
}

// GrantLevel returns the strongest share level the user holds on the blog.
// The author always holds manager level; public visibility grants read.
func GrantLevel(u *userservice.User, b *Blog) ShareLevel {
	if b == nil {
		return ""
	}
	var level ShareLevel
	if b.Visibility == VisibilityPublic {
		level = LevelRead
	}
	if u.IsAnonymous() {
		return level
	}
	if b.Author.UserID == u.ID {
		return LevelManager
	}
	for _, s := range b.Shared {
		match := (s.UserID != "" && s.UserID == u.ID) || (s.GroupID != "" && u.InGroup(s.GroupID))
		if match && levelRank[s.Level] > levelRank[level] {
			level = s.Level
		}
	}
	return level
}

// HasLevel reports whether the user holds at least the given share level.
func HasLevel(u *userservice.User, b *Blog, level ShareLevel) bool {
	return levelRank[GrantLevel(u, b)] >= levelRank[level]
}

// IsManager reports whether the user owns or manages the blog.
func IsManager(u *userservice.User, b *Blog) bool {
	return HasLevel(u, b, LevelManager)
}

// shareMatches builds the grant terms matched against shared entries: one term
// for the user itself and one per group.
func shareMatches(u *userservice.User) []bson.M {
	matches := []bson.M{{"userId": u.ID}}
	for _, gid := range u.GroupIDs {
		matches = append(matches, bson.M{"groupId": gid})
	}
	return matches
}

// ReadableFilter translates CanRead into a store filter: public OR owned OR
// shared with the user or one of its groups.
func ReadableFilter(u *userservice.User) bson.M {
	if u.IsAnonymous() {
		return bson.M{"visibility": VisibilityPublic}
	}
	return bson.M{"$or": []bson.M{
		{"visibility": VisibilityPublic},
		{"author.userId": u.ID},
		{"shared": bson.M{"$elemMatch": bson.M{"$or": shareMatches(u)}}},
	}}
}

// SharedWithFilter is the rights filter used by search: owned OR shared, with
// no public clause.
func SharedWithFilter(u *userservice.User) bson.M {
	return bson.M{"$or": []bson.M{
		{"author.userId": u.ID},
		{"shared": bson.M{"$elemMatch": bson.M{"$or": shareMatches(u)}}},
	}}
}
