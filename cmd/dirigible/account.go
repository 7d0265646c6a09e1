package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claes/dirigible/internal/config"
)

func newLoginCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize Drive access and remember the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Open this URL and authorize access:\n\n  %s\n\nThen paste the code parameter from the redirect: ", a.cred.AuthCodeURL())
			code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no code entered: %v", err)
			}
			if err := a.cred.Exchange(ctx, code); err != nil {
				return err
			}
			email, err := a.drive.AccountEmail(ctx)
			if err != nil {
				return fmt.Errorf("resolve account: %w", err)
			}
			if err := a.prefs.PutAccount(ctx, email); err != nil {
				return err
			}
			fmt.Fprintf(out, "signed in as %s\n", email)
			return nil
		},
	}
}

func newAccountCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show or change the selected account",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the selected account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			name, err := a.prefs.Account(cmd.Context())
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("no account selected")
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}, &cobra.Command{
		Use:   "set <name>",
		Short: "Select an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("account name must not be empty")
			}
			return a.prefs.PutAccount(cmd.Context(), args[0])
		},
	})
	return cmd
}
