package enums

type Role string

const (
	RoleGuest Role = "GUEST"
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
)
