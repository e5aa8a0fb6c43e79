package enrollments

import "time"

// Status of an enrollment record. Records are never mutated after creation,
// so ENROLLED is the only value in use.
type Status string

const StatusEnrolled Status = "ENROLLED"

// Role tags carried by bearer tokens. Comparison is case-sensitive and exact;
// the "ROLE_" prefix some issuers attach is stripped at claim extraction.
const (
	RoleAdmin      = "ADMIN"
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
)

// Principal is the authenticated identity attached to a request. It is derived
// from a validated token, lives for one request, and is never persisted.
// Roles keep the token's claim order; the first entry is the primary role and
// the only one that drives authorization.
type Principal struct {
	Subject string
	Roles   []string
}

// PrimaryRole returns the first role claim, or "" for an empty principal.
func (p Principal) PrimaryRole() string {
	if len(p.Roles) == 0 {
		return ""
	}
	return p.Roles[0]
}

// Enrollment asserts that a user is associated with a course. At most one
// record exists per (UserID, CourseID) pair at any time; the storage layer
// enforces this with a unique index.
type Enrollment struct {
	ID         int64
	UserID     int64
	CourseID   int64
	EnrolledAt time.Time
	Status     Status
}
