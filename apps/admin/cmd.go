package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	client *backend.Client
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addagent -admin ADMIN_EMAIL -username USERNAME -email EMAIL - create a field agent account")
	fmt.Println("  resetpassword -email EMAIL - reset the account's own password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAgentCmd := flag.NewFlagSet("addagent", flag.ExitOnError)
	addAgentAdmin := addAgentCmd.String("admin", "", "The administrator's email. Their password will be prompted next.")
	addAgentUname := addAgentCmd.String("username", "", "The new agent's username.")
	addAgentEmail := addAgentCmd.String("email", "", "The new agent's email.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The account's email. Current and new passwords will be prompted next.")

	switch args[1] {
	case "addagent":
		if err := addAgentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAgentAdmin == "" || *addAgentUname == "" || *addAgentEmail == "" {
			addAgentCmd.Usage()
			return errHelp
		}
		adminPwd, err := promptPassword("Enter admin password:")
		if err != nil {
			return err
		}
		agentPwd, err := promptPassword("Enter the new agent's password:")
		if err != nil {
			return err
		}
		return cli.addAgent(*addAgentAdmin, adminPwd, *addAgentUname, *addAgentEmail, agentPwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		oldPwd, err := promptPassword("Enter current password:")
		if err != nil {
			return err
		}
		newPwd, err := promptPassword("Enter new password:")
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, oldPwd, newPwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errors.New("empty password")
	}
	return string(pwd), nil
}

// login signs in and returns a context carrying the bearer token.
func (cli *commandLine) login(email, password string) (context.Context, backend.Credentials, error) {
	ctx := context.Background()
	creds, err := cli.client.Auth.Login(ctx, core.CleanString(email, true), password)
	if err != nil {
		return nil, backend.Credentials{}, err
	}
	return backend.ContextWithToken(ctx, creds.Token), creds, nil
}
