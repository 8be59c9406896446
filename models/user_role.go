package models

type UserRole string

const (
	ConfigAdminRole UserRole = "CONFIG_ADMIN_ROLE"
	UnitUserRole    UserRole = "UNIT_USER_ROLE"
)

var roleHumanName = map[UserRole]string{
	ConfigAdminRole: "Route configuration administrator",
	UnitUserRole:    "Unit user",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsConfigAdmin() bool {
	return r == ConfigAdminRole
}

const SystemUser = "system"
