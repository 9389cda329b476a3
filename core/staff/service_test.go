package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDirectoryTabOrder(t *testing.T) {
	dir := BuildDirectory(nil)

	if assert.Len(t, dir.Tabs, 4) {
		assert.Equal(t, GroupExecutives, dir.Tabs[0].Category.Key)
		assert.Equal(t, GroupScribes, dir.Tabs[1].Category.Key)
		assert.Equal(t, GroupCreatives, dir.Tabs[2].Category.Key)
		assert.Equal(t, GroupManagerial, dir.Tabs[3].Category.Key)
	}
}

func TestBuildDirectorySectionedTabsKeepTheirShape(t *testing.T) {
	dir := BuildDirectory(nil)

	scribes := dir.Tabs[1]
	if assert.Len(t, scribes.Sections, 6) {
		assert.Equal(t, "Section A", scribes.Sections[0].Section)
		assert.Equal(t, "Section F", scribes.Sections[5].Section)
		for _, sg := range scribes.Sections {
			assert.NotNil(t, sg.Members, "empty sections still render")
			assert.Empty(t, sg.Members)
		}
	}
	assert.Nil(t, scribes.Members)

	creatives := dir.Tabs[2]
	assert.Len(t, creatives.Sections, 4)
}

func TestBuildDirectoryAssignsMembers(t *testing.T) {
	staffers := []Staffer{
		{ID: "1", Name: "Eve", Group: GroupExecutives, RoleType: RoleTypeEditorInChief},
		{ID: "2", Name: "Sam", Group: GroupScribes, Section: "Section B", RoleType: RoleTypeHead},
		{ID: "3", Name: "Kim", Group: GroupScribes, Section: "Section B", RoleType: RoleTypeMember},
		{ID: "4", Name: "Lou", Group: GroupCreatives, Section: "Section A", RoleType: RoleTypeMember},
		{ID: "5", Name: "Pat", Group: GroupManagerial, RoleType: RoleTypeDirector},
		// unknown section never surfaces
		{ID: "6", Name: "Zed", Group: GroupScribes, Section: "Section X", RoleType: RoleTypeMember},
	}

	dir := BuildDirectory(staffers)

	execs := dir.Tabs[0]
	if assert.Len(t, execs.Members, 1) {
		assert.Equal(t, "Eve", execs.Members[0].Name)
	}

	scribes := dir.Tabs[1]
	sectionB := scribes.Sections[1]
	if assert.Len(t, sectionB.Members, 2) {
		assert.Equal(t, "Sam", sectionB.Members[0].Name)
		assert.Equal(t, "Kim", sectionB.Members[1].Name)
	}

	creatives := dir.Tabs[2]
	assert.Len(t, creatives.Sections[0].Members, 1)

	managerial := dir.Tabs[3]
	assert.Len(t, managerial.Members, 1)
}
