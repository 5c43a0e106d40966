package auth

// User is the domain entity. ADMIN users manage the canteen
// configuration; VIEWER is the default role for everyone else.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)
