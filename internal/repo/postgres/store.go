package postgres

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/karouieya6/enrollmentservice/internal/config"
)

type Store struct {
	DB *gorm.DB
}

// NewStore opens the database and migrates the enrollment schema. Error
// translation is enabled so unique-index violations come back as
// gorm.ErrDuplicatedKey, which the repository maps to the domain conflict.
func NewStore(cfg config.Config) (*Store, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}
	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := gdb.AutoMigrate(&EnrollmentModel{}); err != nil {
		return nil, fmt.Errorf("migrate enrollments: %w", err)
	}
	return &Store{DB: gdb}, nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
