package staff

import (
	"time"

	"github.com/quillhq/newsroom/core"
)

// Staffer groups, one per directory tab.
const (
	GroupExecutives = "executives"
	GroupScribes    = "scribes"
	GroupCreatives  = "creatives"
	GroupManagerial = "managerial"
)

// Role types
const (
	RoleTypeEditorInChief    = "editor_in_chief"
	RoleTypeTechnicalEditor  = "technical_editor"
	RoleTypeCreativeDirector = "creative_director"
	RoleTypeManagingEditor   = "managing_editor"
	RoleTypeAssociate        = "associate"
	RoleTypeDirector         = "director"
	RoleTypeHead             = "head"
	RoleTypeMember           = "member"
	RoleTypeOther            = "other"
)

var (
	AllGroups = []string{GroupExecutives, GroupScribes, GroupCreatives, GroupManagerial}

	AllRoleTypes = []string{
		RoleTypeEditorInChief,
		RoleTypeTechnicalEditor,
		RoleTypeCreativeDirector,
		RoleTypeManagingEditor,
		RoleTypeAssociate,
		RoleTypeDirector,
		RoleTypeHead,
		RoleTypeMember,
		RoleTypeOther,
	}

	// tab order is fixed
	Categories = []Category{
		{Key: GroupExecutives, Label: "Executives"},
		{Key: GroupScribes, Label: "Scribes"},
		{Key: GroupCreatives, Label: "Creatives"},
		{Key: GroupManagerial, Label: "Managerial"},
	}

	// sectioned groups render one sub-table per section name
	SectionsPerGroup = map[string][]string{
		GroupScribes:   {"Section A", "Section B", "Section C", "Section D", "Section E", "Section F"},
		GroupCreatives: {"Section A", "Section B", "Section C", "Section D"},
	}
)

type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Staffer is one member of the publication's staff directory.
type Staffer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // display role, free text
	Group     string    `json:"group"`
	RoleType  string    `json:"role_type"`
	Section   string    `json:"section,omitempty"` // for heads and their members
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewStaffer contains information needed to add a Staffer to the directory.
type NewStaffer struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Group    string `json:"group" validate:"required,staffgroup"`
	RoleType string `json:"role_type" validate:"omitempty,roletype"`
	Section  string `json:"section"`
	Image    string `json:"image" validate:"omitempty,url"`
}

func (ns *NewStaffer) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Role = core.CleanString(ns.Role)
	ns.Group = core.CleanString(ns.Group, true /* lower */)
	ns.RoleType = core.CleanString(ns.RoleType, true /* lower */)
	ns.Section = core.CleanString(ns.Section)
	if ns.RoleType == "" {
		ns.RoleType = RoleTypeMember
	}
	return validate.Struct(ns)
}

// UpdateStaffer defines what may be modified on an existing Staffer.
type UpdateStaffer struct {
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Group    string  `json:"group" validate:"omitempty,staffgroup"`
	RoleType string  `json:"role_type" validate:"omitempty,roletype"`
	Section  *string `json:"section"`
	Image    string  `json:"image" validate:"omitempty,url"`
}

func (us *UpdateStaffer) Validate(orig Staffer) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if role := core.CleanString(us.Role); role != "" {
		us.Role = role
	} else {
		us.Role = orig.Role
	}
	if group := core.CleanString(us.Group, true); group != "" {
		us.Group = group
	} else {
		us.Group = orig.Group
	}
	if rt := core.CleanString(us.RoleType, true); rt != "" {
		us.RoleType = rt
	} else {
		us.RoleType = orig.RoleType
	}
	return validate.Struct(us)
}
