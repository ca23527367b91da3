// Package policy holds the gateway's path-prefix access table. The table is
// an allow-list covering only protected prefixes: paths matching no entry
// pass through with any valid token.
package policy

import (
	"strings"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
)

// Rule grants the listed roles access to every path under Prefix.
type Rule struct {
	Prefix string
	Roles  []account.Role
}

// Table is an ordered set of rules supplied at route-registration time.
//
// Matching uses union semantics: a request matching several prefixes is
// allowed if the role appears in any matching rule. A stricter reading where
// every matching rule must agree (so /v1/reports/admin/all could exclude
// USER despite the broader /v1/reports rule) is a product decision; flip the
// loop in Allowed to adopt it.
type Table []Rule

// Default mirrors the protected prefixes of the deployed gateway.
func Default() Table {
	userOrAdmin := []account.Role{account.RoleUser, account.RoleAdmin}
	return Table{
		{Prefix: "/v1/payment", Roles: userOrAdmin},
		{Prefix: "/v1/create", Roles: userOrAdmin},
		{Prefix: "/v1/reports", Roles: userOrAdmin},
		{Prefix: "/v1/reports/admin/all", Roles: []account.Role{account.RoleAdmin}},
		{Prefix: "/v1/product", Roles: userOrAdmin},
	}
}

// Allowed reports whether role may access path. Unmatched paths are allowed;
// role constraints apply only to configured prefixes.
func (t Table) Allowed(role account.Role, path string) bool {
	matched := false
	for _, rule := range t {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		matched = true
		for _, allowed := range rule.Roles {
			if allowed == role {
				return true
			}
		}
	}
	return !matched
}
