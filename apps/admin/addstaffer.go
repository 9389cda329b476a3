package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/quillhq/newsroom/core"
	"github.com/quillhq/newsroom/core/staff"
)

func (cli *commandLine) addStaffer(name, role, group, roleType, section, image string) error {
	roleType = core.CleanString(roleType, true /* lower */)
	if roleType == "" {
		roleType = staff.RoleTypeMember
	}

	now := time.Now().UTC()
	stf := staff.Staffer{
		ID:        uuid.New().String(),
		Name:      core.CleanString(name),
		Role:      core.CleanString(role),
		Group:     core.CleanString(group, true /* lower */),
		RoleType:  roleType,
		Section:   core.CleanString(section),
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := cli.staffRepo.CreateStaffer(stf)
	return err
}
