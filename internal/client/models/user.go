package models

// User roles and statuses as stored by the backend. Deletion is a soft
// status transition, not row removal.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive     = "active"
	StatusSuspicious = "suspicious"
	StatusDeleted    = "deleted"
)

// User is the admin panel's read-only view of an account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// SuspiciousActivity is one entry of the admin audit log.
type SuspiciousActivity struct {
	Username  string `json:"username"`
	UserID    int64  `json:"userId"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Profile is the authenticated user's own identity as returned by the
// profile endpoint.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
