package main

import (
	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

// addAgent signs in as the administrator and creates a field agent account.
func (cli *commandLine) addAgent(adminEmail, adminPwd, uname, email, pwd string) error {
	ctx, _, err := cli.login(adminEmail, adminPwd)
	if err != nil {
		return err
	}

	nu := backend.NewUser{
		Username: core.CleanString(uname, true /* lower */),
		Email:    core.CleanString(email, true /* lower */),
		Password: pwd,
	}
	if err := cli.client.Users.Create(ctx, nu); err != nil {
		return err
	}
	logger.Printf("field agent %q created", nu.Username)
	return nil
}
