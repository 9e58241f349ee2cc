// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/pkg/authentication"
	"github.com/canonical/group-service/pkg/web"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in on a terminal with a pasted authorization code",
	Long: `Prints the authorization URL, waits for the code on stdin and exchanges
it. Useful for checking a credential's grants without running the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, logger, err := newCLIClients()
		if err != nil {
			return err
		}

		flow := authentication.NewFlow(
			c.specs.AuthURL,
			c.clientID,
			c.specs.ClientSecret,
			// Out-of-band redirect: the auth service displays the code for
			// the user to paste back here.
			c.specs.AuthURL+"/v2/web/auth-code",
			true,
			tracing.NewNoopTracer(),
			monitoring.NewNoopMonitor(),
			logger,
		)

		fmt.Println("Open this URL in a browser and authorize:")
		fmt.Println()
		fmt.Println(flow.AuthCodeURL(web.RandomID()))
		fmt.Println()
		fmt.Print("Paste the authorization code here: ")

		reader := bufio.NewReader(os.Stdin)
		code, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("could not read authorization code: %v", err)
		}
		code = strings.TrimSpace(code)
		if code == "" {
			return fmt.Errorf("empty authorization code")
		}

		s, err := flow.Exchange(cmd.Context(), code)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s via %s\n", s.Username, s.ProviderName)
		fmt.Printf("Session valid until %s\n", s.Expires.Format("2006-01-02 15:04:05 MST"))
		if s.RefreshToken != "" {
			fmt.Println("Refresh token granted")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
