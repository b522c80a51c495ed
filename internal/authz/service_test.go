package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func mustEnforce(t *testing.T, svc *Service, adminID, venueID uint, obj, act string) bool {
	t.Helper()
	allow, err := svc.EnforceAdmin(adminID, venueID, obj, act)
	if err != nil {
		t.Fatalf("enforce %s %s failed: %v", act, obj, err)
	}
	return allow
}

func TestBuiltinRoleMatrix(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetAdminRoles(1, 7, []string{RoleVenueManager}); err != nil {
		t.Fatalf("assign manager failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, 7, []string{RolePricingAnalyst}); err != nil {
		t.Fatalf("assign analyst failed: %v", err)
	}
	if err := svc.SetAdminRoles(3, 7, []string{RoleReadonlyAuditor}); err != nil {
		t.Fatalf("assign auditor failed: %v", err)
	}

	cases := []struct {
		name    string
		adminID uint
		obj     string
		act     string
		want    bool
	}{
		{name: "manager_create_rule", adminID: 1, obj: "/api/v1/admin/venues/7/pricing-rules", act: "POST", want: true},
		{name: "manager_delete_asset", adminID: 1, obj: "/api/v1/admin/venues/7/assets/3", act: "DELETE", want: true},
		{name: "manager_change_status", adminID: 1, obj: "/api/v1/admin/venues/7/pricing-rules/3/status", act: "patch", want: true},
		{name: "analyst_preview", adminID: 2, obj: "/api/v1/admin/venues/7/pricing-rules/preview", act: "POST", want: true},
		{name: "analyst_read_rules", adminID: 2, obj: "/api/v1/admin/venues/7/pricing-rules", act: "GET", want: true},
		{name: "analyst_cannot_create", adminID: 2, obj: "/api/v1/admin/venues/7/pricing-rules", act: "POST", want: false},
		{name: "auditor_read_stats", adminID: 3, obj: "/api/v1/admin/venues/7/pricing-rules/stats", act: "GET", want: true},
		{name: "auditor_cannot_preview", adminID: 3, obj: "/api/v1/admin/venues/7/pricing/preview", act: "POST", want: false},
		{name: "no_role", adminID: 4, obj: "/api/v1/admin/venues/7", act: "GET", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustEnforce(t, svc, tc.adminID, 7, tc.obj, tc.act); got != tc.want {
				t.Fatalf("allow want %v got %v", tc.want, got)
			}
		})
	}
}

func TestRolesAreScopedToVenue(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetAdminRoles(1, 7, []string{RoleVenueManager}); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}
	if mustEnforce(t, svc, 1, 8, "/api/v1/admin/venues/8/pricing-rules", "GET") {
		t.Fatalf("role in venue 7 must not grant venue 8")
	}
	venues, err := svc.ListAdminVenues(1)
	if err != nil {
		t.Fatalf("list venues failed: %v", err)
	}
	if len(venues) != 1 || venues[0] != 7 {
		t.Fatalf("venues want [7] got %v", venues)
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetAdminRoles(2, 5, []string{RoleVenueManager}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, 6, []string{RoleReadonlyAuditor}); err != nil {
		t.Fatalf("set other venue role failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, 5, []string{"pricing_analyst"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2, 5)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:pricing_analyst" {
		t.Fatalf("roles want [role:pricing_analyst], got=%v", roles)
	}
	other, err := svc.GetAdminRoles(2, 6)
	if err != nil || len(other) != 1 || other[0] != "role:readonly_auditor" {
		t.Fatalf("other venue roles should be untouched, got=%v err=%v", other, err)
	}

	if err := svc.SetAdminRoles(2, 5, nil); err != nil {
		t.Fatalf("clear roles failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(2, 5)
	if err != nil || len(roles) != 0 {
		t.Fatalf("roles should be cleared, got=%v err=%v", roles, err)
	}
}

func TestSetAdminRolesRejectsUnknownRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	err := svc.SetAdminRoles(1, 1, []string{"super_hacker"})
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("want ErrUnknownRole got %v", err)
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	before, err := svc.GetRolePolicies(RoleVenueManager)
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	after, err := svc.GetRolePolicies(RoleVenueManager)
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if len(before) != len(after) || len(after) != 9 {
		t.Fatalf("policies want 9 stable, before=%d after=%d", len(before), len(after))
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 3 || roles[0] != "role:pricing_analyst" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestNormalizeHelpers(t *testing.T) {
	if got := NormalizeObject("api/v1/admin/venues"); got != "/admin/venues" {
		t.Fatalf("unexpected object: %s", got)
	}
	if got := NormalizeObject("/api/v1/admin/venues/1"); got != "/admin/venues/1" {
		t.Fatalf("unexpected object: %s", got)
	}
	if id, ok := ParseVenueDomain("venue:12"); !ok || id != 12 {
		t.Fatalf("parse domain failed: %d %v", id, ok)
	}
	if _, ok := ParseVenueDomain("12"); ok {
		t.Fatalf("domain without prefix should be rejected")
	}
}
