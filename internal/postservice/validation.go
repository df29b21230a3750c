package postservice

import (
	"github.com/openclassware/blogd/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must be at most 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateComment(v *common.Validator, comment string) {
	v.Check(comment != "", "comment", "must be provided")
}

func validateID(v *common.Validator, id, name string) {
	v.Check(id != "", name, "must be provided")
}

func validateState(v *common.Validator, s State) {
	v.Check(v.CheckIn(string(s), string(StateDraft), string(StateSubmitted), string(StatePublished)), "state", "must be one of DRAFT, SUBMITTED, PUBLISHED")
}
