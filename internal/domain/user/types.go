package user

type Role string

const (
	RoleStudent       Role = "student"
	RoleLabTechnician Role = "lab_technician"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleLabTechnician:
		return true
	default:
		return false
	}
}

// Level orders roles for "at least" checks.
func (r Role) Level() int {
	switch r {
	case RoleLabTechnician:
		return 2
	case RoleStudent:
		return 1
	default:
		return 0
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
