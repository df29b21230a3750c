package userservice

import "context"

// User is the per-request principal. It is resolved by the platform session
// service and never persisted here.
type User struct {
	ID       string   `json:"userId"`
	Username string   `json:"username"`
	GroupIDs []string `json:"groupIds,omitempty"`
}

var AnonymousUser = User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u.ID == ""
}

// InGroup reports whether the user belongs to the given group.
func (u *User) InGroup(groupID string) bool {
	if u == nil {
		return false
	}
	for _, id := range u.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// Capability names an action checked against a principal for one blog.
type Capability string

const (
	CapRead    Capability = "blog.read"
	CapComment Capability = "blog.comment"
	CapContrib Capability = "blog.contrib"
	CapManager Capability = "blog.manager"
)

// Resolver turns a bearer token into the requesting user. Implemented by the
// platform's session service; a nil user with no error never happens, absence
// is reported as an error.
type Resolver interface {
	ResolveUser(ctx context.Context, token string) (*User, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, token string) (*User, error)

func (f ResolverFunc) ResolveUser(ctx context.Context, token string) (*User, error) {
	return f(ctx, token)
}

// AccessChecker reports whether the user may perform the named action on a
// blog. It runs before any core logic touches the resource.
type AccessChecker interface {
	HasCapability(ctx context.Context, user *User, blogID string, c Capability) (bool, error)
}
