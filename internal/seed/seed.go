package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/sheikhgalib/academix/internal/app/models"
	appRepos "github.com/sheikhgalib/academix/internal/app/repositories"
	"github.com/sheikhgalib/academix/internal/pkg/auth"
)

// CreateDefaultData populates an empty database with a working data set:
// one account per role, a few departments, a teacher with courses and a
// student. Each table is seeded only when it is empty, so reruns are cheap
// and never clobber operator changes.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	if err := seedAccounts(ctx, repos.AccountRepository, lgr); err != nil {
		return err
	}

	departments, err := seedDepartments(ctx, repos.DepartmentRepository, lgr)
	if err != nil {
		return err
	}

	cs, ok := departments["Computer Science"]
	if !ok {
		// Departments already existed; look the seed anchor up.
		dept, err := repos.DepartmentRepository.GetByName(ctx, "Computer Science")
		if err != nil {
			lgr.Warn().Err(err).Msg("Computer Science department not found, skipping profile seed")
			return nil
		}
		cs = dept.ID
	}

	teacherID, err := seedTeacher(ctx, repos.TeacherRepository, cs, lgr)
	if err != nil {
		return err
	}

	if err := seedCourses(ctx, repos.CourseRepository, cs, teacherID, lgr); err != nil {
		return err
	}

	return seedStudent(ctx, repos.StudentRepository, cs, lgr)
}

func seedAccounts(ctx context.Context, accounts *appRepos.AccountRepository, lgr zerolog.Logger) error {
	count, err := accounts.Count(ctx)
	if err != nil {
		return fmt.Errorf("error counting accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username string
		email    string
		password string
		role     appModels.Role
	}{
		{"admin", "admin@academix.local", "admin123", appModels.RoleAdmin},
		{"teacher1", "teacher1@academix.local", "teacher123", appModels.RoleTeacher},
		{"student1", "student1@academix.local", "student123", appModels.RoleStudent},
	}

	for _, d := range defaults {
		hashed, err := auth.HashPassword(d.password)
		if err != nil {
			return fmt.Errorf("error hashing seed password: %w", err)
		}
		account := &appModels.Account{
			Username: d.username,
			Email:    d.email,
			Password: hashed,
			Roles:    []string{d.role.Tag()},
			Enabled:  true,
		}
		if err := accounts.Save(ctx, account); err != nil {
			return fmt.Errorf("error seeding account %s: %w", d.username, err)
		}
		lgr.Info().Str("username", d.username).Str("role", string(d.role)).Msg("Seeded default account")
	}

	lgr.Warn().Msg("Default credentials are active; change them before exposing this instance")
	return nil
}

func seedDepartments(ctx context.Context, departments *appRepos.DepartmentRepository, lgr zerolog.Logger) (map[string]int64, error) {
	ids := map[string]int64{}

	count, err := departments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting departments: %w", err)
	}
	if count > 0 {
		return ids, nil
	}

	descriptions := map[string]string{
		"Computer Science": "Computing, software and information systems",
		"Mathematics":      "Pure and applied mathematics",
		"Physics":          "Physical sciences and laboratory research",
	}

	for _, name := range []string{"Computer Science", "Mathematics", "Physics"} {
		desc := descriptions[name]
		dept := &appModels.Department{Name: name, Description: &desc}
		if err := departments.Create(ctx, dept); err != nil {
			return nil, fmt.Errorf("error seeding department %s: %w", name, err)
		}
		ids[name] = dept.ID
		lgr.Info().Str("department", name).Msg("Seeded department")
	}

	return ids, nil
}

func seedTeacher(ctx context.Context, teachers *appRepos.TeacherRepository, departmentID int64, lgr zerolog.Logger) (int64, error) {
	count, err := teachers.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting teachers: %w", err)
	}
	if count > 0 {
		existing, err := teachers.GetByEmployeeID(ctx, "T001")
		if err != nil {
			return 0, nil
		}
		return existing.ID, nil
	}

	teacher := &appModels.Teacher{
		FirstName:    "John",
		LastName:     "Smith",
		Email:        "john.smith@academix.local",
		EmployeeID:   "T001",
		Phone:        "555-0100",
		DepartmentID: departmentID,
	}
	if err := teachers.Create(ctx, teacher); err != nil {
		return 0, fmt.Errorf("error seeding teacher: %w", err)
	}
	lgr.Info().Str("employeeId", teacher.EmployeeID).Msg("Seeded teacher profile")
	return teacher.ID, nil
}

func seedCourses(ctx context.Context, courses *appRepos.CourseRepository, departmentID, teacherID int64, lgr zerolog.Logger) error {
	count, err := courses.Count(ctx)
	if err != nil {
		return fmt.Errorf("error counting courses: %w", err)
	}
	if count > 0 || teacherID == 0 {
		return nil
	}

	defaults := []struct {
		name    string
		code    string
		credits int
	}{
		{"Data Structures", "CS101", 3},
		{"Algorithms", "CS102", 4},
	}

	for _, d := range defaults {
		course := &appModels.Course{
			Name:         d.name,
			CourseCode:   d.code,
			Credits:      d.credits,
			DepartmentID: departmentID,
			TeacherID:    teacherID,
		}
		if err := courses.Create(ctx, course); err != nil {
			return fmt.Errorf("error seeding course %s: %w", d.code, err)
		}
		lgr.Info().Str("courseCode", d.code).Msg("Seeded course")
	}

	return nil
}

func seedStudent(ctx context.Context, students *appRepos.StudentRepository, departmentID int64, lgr zerolog.Logger) error {
	count, err := students.Count(ctx)
	if err != nil {
		return fmt.Errorf("error counting students: %w", err)
	}
	if count > 0 {
		return nil
	}

	student := &appModels.Student{
		FirstName:    "Alice",
		LastName:     "Johnson",
		Email:        "alice.johnson@academix.local",
		StudentID:    "S001",
		Phone:        "555-0200",
		DepartmentID: departmentID,
	}
	if err := students.Create(ctx, student); err != nil {
		return fmt.Errorf("error seeding student: %w", err)
	}
	lgr.Info().Str("studentId", student.StudentID).Msg("Seeded student profile")
	return nil
}
