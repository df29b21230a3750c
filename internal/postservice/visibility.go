package postservice

import (
	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/userservice"
)

// CanReadPost reports whether the user may see a post in the given state. An
// unreadable parent blog hides the post regardless of state. Non-published
// states are visible to the blog's owner and managers, or to contributors
// that name the state explicitly (the management listing path).
func CanReadPost(u *userservice.User, b *blogservice.Blog, state State, stateFilter State) bool {
	if !blogservice.CanRead(u, b) {
		return false
	}
	if state == StatePublished {
		return true
	}
	if blogservice.IsManager(u, b) {
		return true
	}
	return stateFilter == state && blogservice.HasLevel(u, b, blogservice.LevelContrib)
}

// listStates resolves which states a listing may return. Published only,
// unless the caller owns or manages the blog (every state) or is a
// contributor naming a state explicitly.
func listStates(u *userservice.User, b *blogservice.Blog, stateFilter State) []State {
	if stateFilter != "" && blogservice.HasLevel(u, b, blogservice.LevelContrib) {
		return []State{stateFilter}
	}
	if blogservice.IsManager(u, b) {
		return nil
	}
	return []State{StatePublished}
}

// visibleComments filters out unpublished comments for everyone but the
// blog's owner and managers.
func visibleComments(u *userservice.User, b *blogservice.Blog, comments []Comment) []Comment {
	if blogservice.IsManager(u, b) {
		return comments
	}

	visible := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.Published {
			visible = append(visible, c)
		}
	}
	return visible
}
