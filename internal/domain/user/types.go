package user

type Role string

const (
	RoleBroker Role = "broker"
	RoleAdmin  Role = "admin"
)

var roleHierarchy = map[Role]int{
	RoleBroker: 1,
	RoleAdmin:  2,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleHierarchy[r]
	return ok
}

func (r Role) AtLeast(min Role) bool {
	level, ok := roleHierarchy[r]
	minLevel, minOk := roleHierarchy[min]
	return ok && minOk && level >= minLevel
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
