package blogservice

import (
	"github.com/openclassware/blogd/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must be at most 200 characters long")
}

func validateVisibility(v *common.Validator, vis Visibility) {
	v.Check(v.CheckIn(string(vis), string(VisibilityPublic), string(VisibilityProtected), string(VisibilityOwner)), "visibility", "must be one of PUBLIC, PROTECTED, OWNER")
}

func validatePublishType(v *common.Validator, pt PublishType) {
	v.Check(v.CheckIn(string(pt), string(PublishTypeImmediate), string(PublishTypeRestraint)), "publishType", "must be one of IMMEDIATE, RESTRAINT")
}

func validateAuthor(v *common.Validator, a Author) {
	v.Check(a.UserID != "", "author.userId", "must be provided")
	v.Check(a.Username != "", "author.username", "must be provided")
}

func validateID(v *common.Validator, id, name string) {
	v.Check(id != "", name, "must be provided")
}

func validateShares(v *common.Validator, shares []Share) {
	for _, s := range shares {
		v.Check((s.UserID == "") != (s.GroupID == ""), "shared", "each grant must name exactly one of userId and groupId")
		v.Check(v.CheckIn(string(s.Level), string(LevelRead), string(LevelComment), string(LevelContrib), string(LevelManager)), "shared", "level must be one of read, comment, contrib, manager")
		v.Check(s.Level != "", "shared", "level must be provided")
	}
}
