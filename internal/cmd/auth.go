package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bodrovis/taxjar/internal/config"
)

func (a *app) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored API token",
	}
	cmd.AddCommand(a.authLoginCmd(), a.authLogoutCmd(), a.authStatusCmd())
	return cmd
}

func (a *app) authLoginCmd() *cobra.Command {
	var stdin bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token in the OS keyring",
		Long:  "Store an API token in the OS keyring. The token comes from --token or, with --stdin, from the first line of standard input.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := strings.TrimSpace(a.flags.Token)
			if stdin {
				line, err := bufio.NewReader(a.in).ReadString('\n')
				if err != nil && line == "" {
					return usageErrorf("read token from stdin: %v", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return usageErrorf("no token given: pass --token or --stdin")
			}

			creds := config.Credentials{Token: token, APIURL: a.flags.APIURL, Sandbox: a.flags.Sandbox}
			if err := config.SaveCredentials(creds); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Stored token %s\n", maskToken(token))
			return nil
		},
	}
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the token from standard input")
	return cmd
}

func (a *app) authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.DeleteCredentials(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

type authStatus struct {
	Configured bool          `json:"configured"`
	Source     config.Source `json:"source,omitempty"`
	Token      string        `json:"token,omitempty"`
	APIURL     string        `json:"api_url,omitempty"`
	Sandbox    bool          `json:"sandbox"`
}

func (a *app) authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the API token comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Resolve(config.Overrides{Token: a.flags.Token, APIURL: a.flags.APIURL, Sandbox: a.flags.Sandbox})
			if err != nil && !errors.Is(err, config.ErrNotConfigured) {
				return err
			}
			st := authStatus{
				Configured: err == nil,
				Source:     s.TokenSource,
				Token:      maskToken(s.Token),
				APIURL:     s.APIURL,
				Sandbox:    s.Sandbox,
			}
			return a.printer.Print(st, nil)
		},
	}
}

// maskToken keeps the last four characters of longer tokens.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
