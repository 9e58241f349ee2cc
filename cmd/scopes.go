// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/canonical/group-service/pkg/scopes"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "Manage the auth scopes this service registers",
	Long: `Manage the auth scopes this service registers.

The service only accepts access tokens carrying its own scopes; accepting any
directory credential would let tokens harvested elsewhere be replayed here.
Scopes can only be registered through the auth API, which is what these
commands drive.`,
}

var scopesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register any missing scopes with the auth service",
	Long: `Register the service's scopes with the auth service.

This must run once after the directory client is created, before the service
is opened to users. The command is idempotent: scopes that already exist are
skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newCLIClients()
		if err != nil {
			return err
		}

		created, err := c.scopes.EnsureAll(cmd.Context())
		for _, uri := range scopes.AsList(c.clientID) {
			if slices.Contains(created, uri) {
				fmt.Printf("Created %s\n", uri)
			} else if err == nil {
				fmt.Printf("Skipping %s\n", uri)
			}
		}
		return err
	},
}

var scopesDelimiter string

var scopesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scope URIs a user needs for this service",
	Long: `List the scope URIs a user needs in order to use this service.

The URIs are printed whether or not they have been registered with the auth
service yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newCLIClients()
		if err != nil {
			return err
		}

		fmt.Println(scopes.AsString(c.clientID, scopesDelimiter))
		return nil
	},
}

func init() {
	scopesListCmd.Flags().StringVarP(&scopesDelimiter, "delimiter", "d", " ", "delimiter between scope URIs")

	scopesCmd.AddCommand(scopesCreateCmd)
	scopesCmd.AddCommand(scopesListCmd)
	rootCmd.AddCommand(scopesCmd)
}
