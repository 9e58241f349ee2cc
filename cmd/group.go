// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/pkg/groups"
	"github.com/canonical/group-service/pkg/identity"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Work with directory groups directly",
	Long:  `One-shot operations against the directory's groups API, using the service's own credential.`,
}

var groupScopeCmd = &cobra.Command{
	Use:   "scope DOMAIN",
	Short: "Append a domain to bare usernames read from stdin",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				break
			}
			fmt.Println(identity.ScopeUsernames([]string{line}, args[0])[0])
		}
	},
}

var groupDescopeCmd = &cobra.Command{
	Use:   "descope DOMAIN",
	Short: "Strip a domain from scoped usernames read from stdin",
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				break
			}
			out, err := identity.DescopeUsernames([]string{line}, args[0])
			switch {
			case errors.Is(err, directory.ErrNotFound):
				fmt.Fprintf(os.Stderr, "Non-matching domain for %s\n", line)
				fmt.Println()
			case errors.Is(err, directory.ErrInvalidArgument):
				fmt.Fprintf(os.Stderr, "No domain for %s\n", line)
				fmt.Println()
			case err != nil:
				fmt.Fprintln(os.Stderr, err)
				fmt.Println()
			default:
				fmt.Println(out[0])
			}
		}
	},
	Args: cobra.ExactArgs(1),
}

var (
	groupHighRisk bool
	groupAdmins   []string
)

var groupCreateCmd = &cobra.Command{
	Use:   "create NAME [DESCRIPTION]",
	Short: "Create a group",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newCLIClients()
		if err != nil {
			return err
		}

		description := ""
		if len(args) > 1 {
			description = args[1]
		}

		groupID, err := c.groups.Create(cmd.Context(), &groups.CreateParams{
			Name:             args[0],
			Description:      description,
			HighRisk:         groupHighRisk,
			AdditionalAdmins: groupAdmins,
		})
		switch {
		case errors.Is(err, directory.ErrNotFound):
			fmt.Fprintf(os.Stderr, "Could not find identity: %v\n", err)
		case errors.Is(err, directory.ErrPermissionDenied):
			fmt.Fprintln(os.Stderr, "No permissions to create group")
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
		}
		// A non-nil ID after an error means rollback failed and the group
		// still exists remotely.
		if groupID != uuid.Nil {
			fmt.Println(groupID)
		}
		return nil
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete GROUP",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("GROUP must be a UUID: %v", err)
		}

		c, _, err := newCLIClients()
		if err != nil {
			return err
		}

		switch err := c.groups.Delete(cmd.Context(), groupID); {
		case errors.Is(err, directory.ErrPermissionDenied):
			fmt.Fprintln(os.Stderr, "No permission to delete group")
		case errors.Is(err, directory.ErrNotFound):
			fmt.Fprintln(os.Stderr, "Group not found")
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	},
}

var groupMembersCmd = &cobra.Command{
	Use:   "members GROUP",
	Short: "List a group's memberships, one per line as 'role username'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("GROUP must be a UUID: %v", err)
		}

		c, _, err := newCLIClients()
		if err != nil {
			return err
		}

		members, err := c.groups.GetMembers(cmd.Context(), groupID)
		switch {
		case errors.Is(err, directory.ErrNotFound):
			fmt.Fprintln(os.Stderr, "Group not found")
			return nil
		case errors.Is(err, directory.ErrPermissionDenied):
			fmt.Fprintln(os.Stderr, "No permission to list group")
			return nil
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
			return nil
		}

		for _, level := range []struct {
			label string
			set   map[string]struct{}
		}{
			{"member", members.Members},
			{"manager", members.Managers},
			{"admin", members.Admins},
		} {
			usernames := make([]string, 0, len(level.set))
			for username := range level.set {
				usernames = append(usernames, username)
			}
			sort.Strings(usernames)
			for _, username := range usernames {
				fmt.Println(level.label + " " + username)
			}
		}
		return nil
	},
}

var (
	groupMembers   []string
	groupProvision bool
)

var groupAddCmd = &cobra.Command{
	Use:   "add GROUP",
	Short: "Add members to a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("GROUP must be a UUID: %v", err)
		}

		c, _, err := newCLIClients()
		if err != nil {
			return err
		}

		switch err := c.groups.AddMembers(cmd.Context(), groupID, groupMembers, groupProvision); {
		case errors.Is(err, directory.ErrNotFound):
			fmt.Fprintf(os.Stderr, "Not found: %v\n", err)
		case errors.Is(err, directory.ErrPermissionDenied):
			fmt.Fprintln(os.Stderr, "No permission to modify group")
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	},
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove GROUP",
	Short: "Remove members from a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("GROUP must be a UUID: %v", err)
		}

		c, _, err := newCLIClients()
		if err != nil {
			return err
		}

		switch err := c.groups.RemoveMembers(cmd.Context(), groupID, groupMembers); {
		case errors.Is(err, directory.ErrNotFound):
			fmt.Fprintf(os.Stderr, "Not found: %v\n", err)
		case errors.Is(err, directory.ErrPermissionDenied):
			fmt.Fprintln(os.Stderr, "No permission to modify group")
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().BoolVar(&groupHighRisk, "high-risk", false, "group will hold high-risk data")
	groupCreateCmd.Flags().StringArrayVarP(&groupAdmins, "admin", "a", nil, "identity usernames or UUIDs of group administrators")

	groupAddCmd.Flags().StringArrayVarP(&groupMembers, "member", "m", nil, "identity username of the new member")
	groupAddCmd.Flags().BoolVar(&groupProvision, "provision", false, "provision unrecognized identity usernames")
	groupAddCmd.MarkFlagRequired("member")

	groupRemoveCmd.Flags().StringArrayVarP(&groupMembers, "member", "m", nil, "identity username of the member to remove")
	groupRemoveCmd.MarkFlagRequired("member")

	groupCmd.AddCommand(groupScopeCmd)
	groupCmd.AddCommand(groupDescopeCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupDeleteCmd)
	groupCmd.AddCommand(groupMembersCmd)
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupRemoveCmd)
	rootCmd.AddCommand(groupCmd)
}
