package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sheikhgalib/academix/internal/app/authz"
	"github.com/sheikhgalib/academix/internal/app/controllers"
	"github.com/sheikhgalib/academix/internal/middleware"
)

// SetupRouter configures all application routes. The policy gate runs on
// every route; per-route middleware is deliberately absent so that access
// control lives in one table.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	departmentController *controllers.DepartmentController,
	teacherController *controllers.TeacherController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
	policy *authz.Policy,
) {
	router.Use(authMiddleware.ResolvePrincipal())
	router.Use(authMiddleware.PolicyGate(policy))

	// Auth and session flows
	router.GET("/login", authController.ShowLogin)
	router.POST("/login", authController.Login)
	router.GET("/register", authController.ShowRegister)
	router.POST("/register", authController.Register)
	router.POST("/logout", authController.Logout)
	router.GET("/dashboard", authController.Dashboard)
	router.GET("/access-denied", authController.AccessDenied)

	// Department records
	department := router.Group("/department")
	{
		department.GET("/list", departmentController.ListDepartments)
		department.GET("/view/:id", departmentController.ViewDepartment)
		department.POST("/create", departmentController.CreateDepartment)
		department.POST("/edit/:id", departmentController.EditDepartment)
		department.POST("/delete/:id", departmentController.DeleteDepartment)
	}

	// Teacher records
	teacher := router.Group("/teacher")
	{
		teacher.GET("/list", teacherController.ListTeachers)
		teacher.GET("/view/:id", teacherController.ViewTeacher)
		teacher.POST("/create", teacherController.CreateTeacher)
		teacher.POST("/edit/:id", teacherController.EditTeacher)
		teacher.POST("/delete/:id", teacherController.DeleteTeacher)
	}

	// Student records
	student := router.Group("/student")
	{
		student.GET("/list", studentController.ListStudents)
		student.GET("/view/:id", studentController.ViewStudent)
		student.POST("/create", studentController.CreateStudent)
		student.POST("/edit/:id", studentController.EditStudent)
		student.POST("/delete/:id", studentController.DeleteStudent)
	}

	// Course records
	course := router.Group("/course")
	{
		course.GET("/list", courseController.ListCourses)
		course.GET("/view/:id", courseController.ViewCourse)
		course.POST("/create", courseController.CreateCourse)
		course.POST("/edit/:id", courseController.EditCourse)
		course.POST("/delete/:id", courseController.DeleteCourse)
	}
}
