package blogservice

import (
	"context"
	"errors"

	"github.com/openclassware/blogd/internal/userservice"
)

// AccessChecker evaluates capability checks against the blog's share grants.
// It satisfies userservice.AccessChecker so deployments can swap in the
// platform's own provider.
type AccessChecker struct {
	s *BlogService
}

func NewAccessChecker(s *BlogService) *AccessChecker {
	return &AccessChecker{s: s}
}

var capLevel = map[userservice.Capability]ShareLevel{
	userservice.CapRead:    LevelRead,
	userservice.CapComment: LevelComment,
	userservice.CapContrib: LevelContrib,
	userservice.CapManager: LevelManager,
}

func (a *AccessChecker) HasCapability(ctx context.Context, user *userservice.User, blogID string, c userservice.Capability) (bool, error) {
	level, ok := capLevel[c]
	if !ok {
		return false, nil
	}

	blog, err := a.s.GetBlogByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if c == userservice.CapRead {
		return CanRead(user, blog), nil
	}

	return HasLevel(user, blog, level), nil
}
