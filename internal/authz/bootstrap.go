package authz

import "fmt"

// 预置角色
const (
	RoleVenueManager    = "venue_manager"
	RolePricingAnalyst  = "pricing_analyst"
	RoleReadonlyAuditor = "readonly_auditor"
)

// RoleSeed 预置角色定义，Inherits 的策略在初始化时展开
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleReadonlyAuditor,
			Policies: []Policy{
				{Object: "/admin/venues/:venue_id", Action: "GET"},
				{Object: "/admin/venues/:venue_id/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     RolePricingAnalyst,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{
				{Object: "/admin/venues/:venue_id/pricing-rules/preview", Action: "POST"},
				{Object: "/admin/venues/:venue_id/pricing/preview", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     RoleVenueManager,
			Inherits: []string{RolePricingAnalyst},
			Policies: []Policy{
				{Object: "/admin/venues/:venue_id/assets", Action: "*"},
				{Object: "/admin/venues/:venue_id/assets/:id", Action: "*"},
				{Object: "/admin/venues/:venue_id/pricing-rules", Action: "*"},
				{Object: "/admin/venues/:venue_id/pricing-rules/:id", Action: "*"},
				{Object: "/admin/venues/:venue_id/pricing-rules/:id/status", Action: "*"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色策略（幂等）
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	seeds := BuiltinRoleSeeds()
	byRole := make(map[string]RoleSeed, len(seeds))
	for _, seed := range seeds {
		byRole[seed.Role] = seed
	}

	for _, seed := range seeds {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range expandSeedPolicies(seed, byRole, map[string]bool{}) {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, anyDomain, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}

func expandSeedPolicies(seed RoleSeed, byRole map[string]RoleSeed, visiting map[string]bool) []Policy {
	if visiting[seed.Role] {
		return nil
	}
	visiting[seed.Role] = true
	policies := make([]Policy, 0, len(seed.Policies))
	for _, parent := range seed.Inherits {
		if parentSeed, ok := byRole[parent]; ok {
			policies = append(policies, expandSeedPolicies(parentSeed, byRole, visiting)...)
		}
	}
	return append(policies, seed.Policies...)
}
