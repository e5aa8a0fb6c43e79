package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/karouieya6/enrollmentservice/internal/config"
	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
)

// openTestStore needs a reachable database; the suite is skipped otherwise so
// unit runs stay hermetic.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	store, err := NewStore(config.Config{PostgresDSN: dsn})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() {
		store.DB.Exec("DELETE FROM enrollments")
		store.Close()
	})
	return store
}

func TestEnrollmentRepoRoundTrip(t *testing.T) {
	store := openTestStore(t)
	repo := NewEnrollmentRepo(store.DB)
	ctx := context.Background()

	record := enrollments.Enrollment{
		UserID:     1,
		CourseID:   2,
		EnrolledAt: time.Now().UTC(),
		Status:     enrollments.StatusEnrolled,
	}
	if err := repo.Create(ctx, &record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("Create did not populate the generated ID")
	}

	got, err := repo.FindByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.UserID != 1 || got.CourseID != 2 || got.Status != enrollments.StatusEnrolled {
		t.Errorf("got %+v, want the stored record back", got)
	}

	if _, err := repo.FindByUserAndCourse(ctx, 1, 2); err != nil {
		t.Fatalf("FindByUserAndCourse: %v", err)
	}

	if err := repo.Delete(ctx, record); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, record.ID); !errors.Is(err, enrollments.ErrNotFound) {
		t.Fatalf("got %v after delete, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, record); !errors.Is(err, enrollments.ErrNotFound) {
		t.Fatalf("repeated delete: got %v, want ErrNotFound", err)
	}
}

func TestEnrollmentRepoUniqueConstraint(t *testing.T) {
	store := openTestStore(t)
	repo := NewEnrollmentRepo(store.DB)
	ctx := context.Background()

	first := enrollments.Enrollment{UserID: 5, CourseID: 6, EnrolledAt: time.Now().UTC(), Status: enrollments.StatusEnrolled}
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	duplicate := enrollments.Enrollment{UserID: 5, CourseID: 6, EnrolledAt: time.Now().UTC(), Status: enrollments.StatusEnrolled}
	if err := repo.Create(ctx, &duplicate); !errors.Is(err, enrollments.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict from the unique index", err)
	}
}

func TestEnrollmentRepoPaging(t *testing.T) {
	store := openTestStore(t)
	repo := NewEnrollmentRepo(store.DB)
	ctx := context.Background()

	for courseID := int64(1); courseID <= 7; courseID++ {
		record := enrollments.Enrollment{UserID: 9, CourseID: courseID, EnrolledAt: time.Now().UTC(), Status: enrollments.StatusEnrolled}
		if err := repo.Create(ctx, &record); err != nil {
			t.Fatalf("seed create %d: %v", courseID, err)
		}
	}

	count, err := repo.CountByUser(ctx, 9)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 7 {
		t.Fatalf("got count %d, want 7", count)
	}

	page1, err := repo.FindByUser(ctx, 9, 0, 5)
	if err != nil {
		t.Fatalf("FindByUser page 1: %v", err)
	}
	page2, err := repo.FindByUser(ctx, 9, 5, 5)
	if err != nil {
		t.Fatalf("FindByUser page 2: %v", err)
	}
	if len(page1) != 5 || len(page2) != 2 {
		t.Fatalf("got pages of %d and %d, want 5 and 2", len(page1), len(page2))
	}
	for i := 1; i < len(page1); i++ {
		if page1[i].ID <= page1[i-1].ID {
			t.Fatal("page not in ascending ID order")
		}
	}
	if page2[0].ID <= page1[len(page1)-1].ID {
		t.Fatal("pages overlap")
	}
}
