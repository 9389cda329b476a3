package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/quillhq/newsroom/core/staff"
	"github.com/quillhq/newsroom/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sqlx.DB
	usrRepo   user.Repository
	staffRepo staff.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -username USERNAME -email EMAIL [-admin] - update or create a user; the password will be prompted")
	fmt.Println("  addstaffer -name NAME -role ROLE -group GROUP [-roletype TYPE] [-section SECTION] [-image URL] - add a staffer to the directory")
	fmt.Println("  resetpassword -username USERNAME|EMAIL - reset user's password")
	fmt.Println("  migrate COMMAND [args] - run database migrations (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserIsAdmin := addUserCmd.Bool("admin", false, "Grant all roles to the user.")

	addStafferCmd := flag.NewFlagSet("addstaffer", flag.ExitOnError)
	addStafferName := addStafferCmd.String("name", "", "The staffer's display name.")
	addStafferRole := addStafferCmd.String("role", "", "The staffer's display role.")
	addStafferGroup := addStafferCmd.String("group", "", "One of: executives, scribes, creatives, managerial.")
	addStafferRoleType := addStafferCmd.String("roletype", "", "The staffer's role type; defaults to member.")
	addStafferSection := addStafferCmd.String("section", "", "The staffer's section, for sectioned groups.")
	addStafferImage := addStafferCmd.String("image", "", "URL of the staffer's picture.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" && *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, *addUserEmail, pwd, *addUserIsAdmin)
	case "addstaffer":
		if err := addStafferCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStafferName == "" || *addStafferRole == "" || *addStafferGroup == "" {
			addStafferCmd.Usage()
			return errHelp
		}
		return cli.addStaffer(*addStafferName, *addStafferRole, *addStafferGroup, *addStafferRoleType, *addStafferSection, *addStafferImage)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
