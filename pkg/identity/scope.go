// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"strings"

	"github.com/canonical/group-service/internal/directory"
)

// ScopeUsernames qualifies a collection of bare users with a domain,
// producing user@domain identity usernames. Order is preserved.
func ScopeUsernames(users []string, domain string) []string {
	usernames := make([]string, 0, len(users))
	for _, user := range users {
		usernames = append(usernames, user+"@"+domain)
	}
	return usernames
}

// DescopeUsernames strips the domain from a collection of user@domain
// usernames. A username without exactly one @ is InvalidArgument; a username
// whose domain does not match fails with NotFound for that username.
func DescopeUsernames(usernames []string, domain string) ([]string, error) {
	users := make([]string, 0, len(usernames))
	for _, username := range usernames {
		parts := strings.Split(username, "@")
		if len(parts) != 2 {
			return nil, directory.NewInvalidArgument("no domain in username %s", username)
		}
		if parts[1] != domain {
			return nil, directory.NewNotFound("username %s does not match domain %s", username, domain)
		}
		users = append(users, parts[0])
	}
	return users, nil
}
