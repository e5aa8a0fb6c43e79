package postgres

import (
	"time"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
)

// EnrollmentModel is the persisted shape of an enrollment. The composite
// unique index is the authoritative guard against duplicate (user, course)
// pairs; the engine's pre-check only short-circuits the common case.
type EnrollmentModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID   int64     `gorm:"not null;uniqueIndex:idx_user_course"`
	EnrolledAt time.Time `gorm:"not null"`
	Status     string    `gorm:"not null"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}

func toModel(record enrollments.Enrollment) EnrollmentModel {
	return EnrollmentModel{
		ID:         record.ID,
		UserID:     record.UserID,
		CourseID:   record.CourseID,
		EnrolledAt: record.EnrolledAt,
		Status:     string(record.Status),
	}
}

func toDomain(model EnrollmentModel) enrollments.Enrollment {
	return enrollments.Enrollment{
		ID:         model.ID,
		UserID:     model.UserID,
		CourseID:   model.CourseID,
		EnrolledAt: model.EnrolledAt,
		Status:     enrollments.Status(model.Status),
	}
}
