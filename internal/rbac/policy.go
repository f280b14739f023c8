package rbac

import "supplyhr/internal/domain"

// modelText is the casbin model. Roles are a flat tagged variant decided
// at login, so there is no grouping section.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type permission struct {
	resource string
	action   string
}

// rolePermissions is the full authorization table. Admin additionally gets
// every permission listed for any role.
var rolePermissions = map[domain.Role][]permission{
	domain.RoleAdmin: {
		{"employee", "create"}, {"employee", "update"}, {"employee", "delete"},
		{"inventory", "create"}, {"inventory", "delete"},
		{"supplier", "create"}, {"supplier", "update"}, {"supplier", "delete"},
		{"purchase_order", "delete"},
		{"audit", "read"},
	},
	domain.RoleManager: {
		{"employee", "read"},
		{"attendance", "create"}, {"attendance", "read"}, {"attendance", "read_all"},
		{"inventory", "read"}, {"inventory", "update"}, {"inventory", "adjust"},
		{"supplier", "read"},
		{"purchase_order", "create"}, {"purchase_order", "read"},
		{"purchase_order", "update"}, {"purchase_order", "approve"},
		{"purchase_order", "fulfill"},
		{"report", "read"},
		{"audit", "read"},
	},
	domain.RoleEmployee: {
		{"attendance", "create"}, {"attendance", "read"},
		{"inventory", "read"},
	},
	domain.RoleSupplier: {
		{"purchase_order", "read"}, {"purchase_order", "fulfill"},
	},
}
