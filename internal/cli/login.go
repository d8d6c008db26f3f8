package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(r *root) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with username and password",
		Long:  "Exchanges username and password for a token pair at the identity provider and caches the session locally. The password is read from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
				name, err := readLine(in)
				if err != nil {
					return err
				}
				username = name
			}
			if username == "" {
				return errMissingUsername
			}

			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			password, err := readLine(in)
			if err != nil {
				return err
			}

			app, err := r.app(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			cred, err := app.Auth.PasswordLogin(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", cred.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	return cmd
}

func newLogoutCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear the local credential cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := r.app(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
