package domain

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// Staff is an authenticated shelter worker. The core treats the identity as
// opaque; Role only distinguishes privileged operations.
type Staff struct {
	ID        string
	Email     string
	ShelterID string
	Role      Role
	Locale    string
}
