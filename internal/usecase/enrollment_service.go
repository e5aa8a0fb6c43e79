package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
)

const DefaultPageSize = 5

// EnrollmentService orchestrates enrollment operations against the store and
// enforces the one-record-per-(user, course) contract. It caches nothing
// between calls; every operation reads the store directly so the uniqueness
// invariant is always judged against current state.
type EnrollmentService struct {
	Enrollments EnrollmentRepository
	Identity    IdentityResolver
	Clock       func() time.Time
	Log         *logrus.Logger
}

// EnrollInput identifies the course and carries the bearer credential the
// user identity is resolved from. User IDs supplied by clients are not
// accepted anywhere; the credential is the single source of identity.
type EnrollInput struct {
	Credential string
	CourseID   int64
}

type UnenrollInput struct {
	Credential string
	CourseID   int64
}

type ListByUserInput struct {
	UserID int64
	Page   int
	Size   int
}

// EnrollmentPage is one page of a user's enrollments plus the page metadata
// callers need to continue iterating.
type EnrollmentPage struct {
	Items      []enrollments.Enrollment
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

func NewEnrollmentService(repo EnrollmentRepository, identity IdentityResolver, log *logrus.Logger) *EnrollmentService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EnrollmentService{
		Enrollments: repo,
		Identity:    identity,
		Clock:       time.Now,
		Log:         log,
	}
}

// Enroll creates an enrollment for the credential's user in the given course.
// An existing record for the pair fails with ErrConflict; there is no silent
// no-op and no update. The lookup here is a fast path only: the store's
// unique constraint is what actually decides a race between duplicate
// requests, and the resulting conflict surfaces the same way.
func (s *EnrollmentService) Enroll(ctx context.Context, input EnrollInput) (enrollments.Enrollment, error) {
	if input.CourseID <= 0 {
		return enrollments.Enrollment{}, enrollments.ErrInvalidInput
	}
	userID, err := s.Identity.ResolveUserID(ctx, input.Credential)
	if err != nil {
		return enrollments.Enrollment{}, err
	}
	_, err = s.Enrollments.FindByUserAndCourse(ctx, userID, input.CourseID)
	if err == nil {
		return enrollments.Enrollment{}, enrollments.ErrConflict
	}
	if !errors.Is(err, enrollments.ErrNotFound) {
		return enrollments.Enrollment{}, err
	}
	record := enrollments.Enrollment{
		UserID:     userID,
		CourseID:   input.CourseID,
		EnrolledAt: s.Clock(),
		Status:     enrollments.StatusEnrolled,
	}
	if err := s.Enrollments.Create(ctx, &record); err != nil {
		return enrollments.Enrollment{}, err
	}
	s.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"course_id": input.CourseID,
	}).Info("user enrolled in course")
	return record, nil
}

// Unenroll deletes the enrollment for the credential's user and the given
// course. A missing record fails with ErrNotFound, including on repeated
// unenroll of the same pair.
func (s *EnrollmentService) Unenroll(ctx context.Context, input UnenrollInput) error {
	if input.CourseID <= 0 {
		return enrollments.ErrInvalidInput
	}
	userID, err := s.Identity.ResolveUserID(ctx, input.Credential)
	if err != nil {
		return err
	}
	record, err := s.Enrollments.FindByUserAndCourse(ctx, userID, input.CourseID)
	if err != nil {
		if errors.Is(err, enrollments.ErrNotFound) {
			s.Log.WithFields(logrus.Fields{
				"user_id":   userID,
				"course_id": input.CourseID,
			}).Warn("unenroll requested for non-existing enrollment")
		}
		return err
	}
	if err := s.Enrollments.Delete(ctx, record); err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"course_id": input.CourseID,
	}).Info("user unenrolled from course")
	return nil
}

// IsEnrolled reports whether an enrollment exists for the pair. It has no
// side effects and treats every store answer as definitive.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error) {
	_, err := s.Enrollments.FindByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, enrollments.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// ListByUser returns one page of a user's enrollments in stable ID order.
// Page numbering is 1-based; a zero size falls back to DefaultPageSize.
func (s *EnrollmentService) ListByUser(ctx context.Context, input ListByUserInput) (EnrollmentPage, error) {
	if input.UserID <= 0 {
		return EnrollmentPage{}, enrollments.ErrInvalidInput
	}
	if input.Page == 0 {
		input.Page = 1
	}
	if input.Size == 0 {
		input.Size = DefaultPageSize
	}
	if input.Page < 1 || input.Size < 1 {
		return EnrollmentPage{}, enrollments.ErrInvalidInput
	}
	total, err := s.Enrollments.CountByUser(ctx, input.UserID)
	if err != nil {
		return EnrollmentPage{}, err
	}
	offset := (input.Page - 1) * input.Size
	items, err := s.Enrollments.FindByUser(ctx, input.UserID, offset, input.Size)
	if err != nil {
		return EnrollmentPage{}, err
	}
	totalPages := int((total + int64(input.Size) - 1) / int64(input.Size))
	return EnrollmentPage{
		Items:      items,
		Page:       input.Page,
		Size:       input.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// ListAll dumps every enrollment record. Reserved for the admin route.
func (s *EnrollmentService) ListAll(ctx context.Context) ([]enrollments.Enrollment, error) {
	return s.Enrollments.FindAll(ctx)
}

func (s *EnrollmentService) GetByID(ctx context.Context, id int64) (enrollments.Enrollment, error) {
	if id <= 0 {
		return enrollments.Enrollment{}, enrollments.ErrInvalidInput
	}
	return s.Enrollments.FindByID(ctx, id)
}

func (s *EnrollmentService) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, enrollments.ErrInvalidInput
	}
	return s.Enrollments.CountByUser(ctx, userID)
}
