package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
)

var errDBUnavailable = errors.New("db unavailable")

type EnrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepo(db *gorm.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

func (r *EnrollmentRepo) Create(ctx context.Context, record *enrollments.Enrollment) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := toModel(*record)
	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return enrollments.ErrConflict
		}
		return err
	}
	record.ID = model.ID
	return nil
}

func (r *EnrollmentRepo) Delete(ctx context.Context, record enrollments.Enrollment) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&EnrollmentModel{}, record.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return enrollments.ErrNotFound
	}
	return nil
}

func (r *EnrollmentRepo) FindByID(ctx context.Context, id int64) (enrollments.Enrollment, error) {
	if r.db == nil {
		return enrollments.Enrollment{}, errDBUnavailable
	}
	var model EnrollmentModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enrollments.Enrollment{}, enrollments.ErrNotFound
		}
		return enrollments.Enrollment{}, err
	}
	return toDomain(model), nil
}

func (r *EnrollmentRepo) FindByUserAndCourse(ctx context.Context, userID, courseID int64) (enrollments.Enrollment, error) {
	if r.db == nil {
		return enrollments.Enrollment{}, errDBUnavailable
	}
	var model EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enrollments.Enrollment{}, enrollments.ErrNotFound
		}
		return enrollments.Enrollment{}, err
	}
	return toDomain(model), nil
}

func (r *EnrollmentRepo) FindByUser(ctx context.Context, userID int64, offset, limit int) ([]enrollments.Enrollment, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func (r *EnrollmentRepo) FindAll(ctx context.Context) ([]enrollments.Enrollment, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []EnrollmentModel
	err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func (r *EnrollmentRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if r.db == nil {
		return 0, errDBUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EnrollmentModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainSlice(models []EnrollmentModel) []enrollments.Enrollment {
	out := make([]enrollments.Enrollment, 0, len(models))
	for _, model := range models {
		out = append(out, toDomain(model))
	}
	return out
}
