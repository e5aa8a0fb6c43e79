package usecase

import (
	"context"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
)

// EnrollmentRepository is the persistence port for enrollment records. The
// store owns the (user_id, course_id) unique constraint: Create must surface
// a racing duplicate insert as enrollments.ErrConflict, and lookups report a
// missing record as enrollments.ErrNotFound.
type EnrollmentRepository interface {
	Create(ctx context.Context, record *enrollments.Enrollment) error
	Delete(ctx context.Context, record enrollments.Enrollment) error
	FindByID(ctx context.Context, id int64) (enrollments.Enrollment, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID int64) (enrollments.Enrollment, error)
	FindByUser(ctx context.Context, userID int64, offset, limit int) ([]enrollments.Enrollment, error)
	FindAll(ctx context.Context) ([]enrollments.Enrollment, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// IdentityResolver maps a bearer credential to the numeric user identity the
// external identity authority knows it by.
type IdentityResolver interface {
	ResolveUserID(ctx context.Context, bearerToken string) (int64, error)
}
