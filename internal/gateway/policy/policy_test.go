package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kalado/auth-gateway/internal/core/domain/account"
	"github.com/kalado/auth-gateway/internal/gateway/policy"
)

func TestAllowed_DefaultTable(t *testing.T) {
	table := policy.Default()

	cases := []struct {
		name string
		role account.Role
		path string
		want bool
	}{
		{"user on product", account.RoleUser, "/v1/product", true},
		{"user on product subpath", account.RoleUser, "/v1/product/42", true},
		{"admin on payment", account.RoleAdmin, "/v1/payment", true},
		{"user on reports", account.RoleUser, "/v1/reports/mine", true},
		{"admin on admin reports", account.RoleAdmin, "/v1/reports/admin/all", true},
		// /v1/reports/admin/all also matches the broader /v1/reports prefix,
		// which grants USER; union matching lets the broader rule win.
		{"user on admin reports", account.RoleUser, "/v1/reports/admin/all", true},
		{"unmatched path passes", account.RoleUser, "/v1/something-else", true},
		{"empty role on product", account.Role(""), "/v1/product", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, table.Allowed(tc.role, tc.path))
		})
	}
}

func TestAllowed_AdminOnlyPrefix(t *testing.T) {
	table := policy.Table{
		{Prefix: "/v1/admin", Roles: []account.Role{account.RoleAdmin}},
	}

	require.True(t, table.Allowed(account.RoleAdmin, "/v1/admin/settings"))
	require.False(t, table.Allowed(account.RoleUser, "/v1/admin/settings"))
	require.True(t, table.Allowed(account.RoleUser, "/v1/public"))
}

func TestAllowed_UnionAcrossMatchingRules(t *testing.T) {
	table := policy.Table{
		{Prefix: "/v1/data", Roles: []account.Role{account.RoleUser}},
		{Prefix: "/v1/data/internal", Roles: []account.Role{account.RoleAdmin}},
	}

	require.True(t, table.Allowed(account.RoleAdmin, "/v1/data/internal"))
	require.True(t, table.Allowed(account.RoleUser, "/v1/data/internal"), "any matching rule granting the role is enough")
	require.True(t, table.Allowed(account.RoleUser, "/v1/data/other"))
	require.False(t, table.Allowed(account.RoleAdmin, "/v1/data/other"))
}

func TestAllowed_EmptyTable(t *testing.T) {
	var table policy.Table
	require.True(t, table.Allowed(account.RoleUser, "/anything"))
}
