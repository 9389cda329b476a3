package staff

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("staffer not found")
)

type (
	Repository interface {
		CreateStaffer(stf Staffer) (Staffer, error)
		QueryAllStaffers() ([]Staffer, error)
		GetStafferByID(id string) (Staffer, error)
		UpdateStaffer(stf Staffer) (Staffer, error)
		DeleteStaffersByID(ids ...string) error
	}

	ServiceInterface interface {
		Create(ns NewStaffer) (Staffer, error)
		QueryAll() ([]Staffer, error)
		GetByID(id string) (Staffer, error)
		Update(id string, us UpdateStaffer) (Staffer, error)
		Delete(ids ...string) error
		Directory() (Directory, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) ServiceInterface {
	return &service{repo: repo}
}

func (svc *service) Create(ns NewStaffer) (Staffer, error) {
	now := time.Now().UTC()
	stf := Staffer{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		Role:      ns.Role,
		Group:     ns.Group,
		RoleType:  ns.RoleType,
		Section:   ns.Section,
		Image:     ns.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStaffer(stf)
}

func (svc *service) QueryAll() ([]Staffer, error) {
	return svc.repo.QueryAllStaffers()
}

func (svc *service) GetByID(id string) (Staffer, error) {
	return svc.repo.GetStafferByID(id)
}

func (svc *service) Update(id string, us UpdateStaffer) (Staffer, error) {
	orig, err := svc.repo.GetStafferByID(id)
	if err != nil {
		return Staffer{}, err
	}
	orig.Name = us.Name
	orig.Role = us.Role
	orig.Group = us.Group
	orig.RoleType = us.RoleType
	if us.Section != nil {
		orig.Section = *us.Section
	}
	if us.Image != "" {
		orig.Image = us.Image
	}
	orig.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStaffer(orig)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteStaffersByID(ids...)
}

// Directory builds the tabbed projection: one tab per category in fixed
// order; scribes and creatives subdivide into their fixed section lists,
// empty sections included so the tables keep their shape.
func (svc *service) Directory() (Directory, error) {
	staffers, err := svc.repo.QueryAllStaffers()
	if err != nil {
		return Directory{}, err
	}
	return BuildDirectory(staffers), nil
}

type (
	// SectionGroup is one section sub-table within a sectioned tab.
	SectionGroup struct {
		Section string    `json:"section"`
		Members []Staffer `json:"members"`
	}

	// DirectoryTab renders one category: sectioned tabs carry Sections,
	// flat tabs carry Members.
	DirectoryTab struct {
		Category Category       `json:"category"`
		Sections []SectionGroup `json:"sections,omitempty"`
		Members  []Staffer      `json:"members,omitempty"`
	}

	Directory struct {
		Tabs []DirectoryTab `json:"tabs"`
	}
)

// BuildDirectory is the pure projection behind Directory.
func BuildDirectory(staffers []Staffer) Directory {
	dir := Directory{Tabs: make([]DirectoryTab, 0, len(Categories))}

	for _, cat := range Categories {
		tab := DirectoryTab{Category: cat}

		if sections, ok := SectionsPerGroup[cat.Key]; ok {
			for _, section := range sections {
				sg := SectionGroup{Section: section, Members: []Staffer{}}
				for _, stf := range staffers {
					if stf.Group == cat.Key && stf.Section == section {
						sg.Members = append(sg.Members, stf)
					}
				}
				tab.Sections = append(tab.Sections, sg)
			}
		} else {
			tab.Members = []Staffer{}
			for _, stf := range staffers {
				if stf.Group == cat.Key {
					tab.Members = append(tab.Members, stf)
				}
			}
		}
		dir.Tabs = append(dir.Tabs, tab)
	}
	return dir
}
