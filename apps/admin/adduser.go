package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/quillhq/newsroom/core"
	"github.com/quillhq/newsroom/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	now := time.Now().UTC()
	usr, err := cli.getUser(uname, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			ID:        uuid.New().String(),
			Username:  uname,
			Email:     email,
			CreatedAt: now,
		}
	}
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	usr.IsActive = true
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if err == user.ErrNotFound {
		_, err = cli.usrRepo.CreateUser(usr)
		return err
	}
	isActive := usr.IsActive
	_, err = cli.usrRepo.UpdateUser(usr, &isActive)
	return err
}

func (cli *commandLine) getUser(uname, email string) (user.User, error) {
	if uname != "" {
		if usr, err := cli.usrRepo.GetUserByUsername(uname); err == nil {
			return usr, nil
		} else if err != user.ErrNotFound {
			return user.User{}, err
		}
	}
	if email != "" {
		return cli.usrRepo.GetUserByEmail(email)
	}
	return user.User{}, user.ErrNotFound
}
