package main

import "github.com/migeprof/fehub/services/backend"

// resetPassword signs in with the current password and replaces it.
func (cli *commandLine) resetPassword(email, oldPwd, newPwd string) error {
	ctx, creds, err := cli.login(email, oldPwd)
	if err != nil {
		return err
	}

	err = cli.client.Auth.ResetPassword(ctx, backend.PasswordReset{
		UserID:             creds.UserID,
		OldPassword:        oldPwd,
		NewPassword:        newPwd,
		ConfirmNewPassword: newPwd,
	})
	if err != nil {
		return err
	}
	logger.Printf("password updated for %q", email)
	return nil
}
