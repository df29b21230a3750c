package postservice

import (
	"github.com/openclassware/blogd/internal/blogservice"
)

// submitState returns the state a submitted post lands in. Blogs that publish
// immediately skip the review queue.
func submitState(pt blogservice.PublishType) State {
	if pt == blogservice.PublishTypeImmediate {
		return StatePublished
	}
	return StateSubmitted
}

// transitionSources lists the states a trigger may move a post out of. Every
// write guards on one of these, so two racing transitions cannot both apply.
var transitionSources = map[State][]State{
	StateSubmitted: {StateDraft},                 // submit (also DRAFT -> PUBLISHED when immediate)
	StatePublished: {StateDraft, StateSubmitted}, // publish
	StateDraft:     {StatePublished},             // unpublish
}

// sourcesFor returns the permitted current states for a transition into
// target.
func sourcesFor(target State) []State {
	return transitionSources[target]
}
