package courseRoutes

import (
	controllers "skillhub/controllers/course"
	"skillhub/middleware"
	"skillhub/models"
	validators "skillhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the course catalog and enrollment endpoints.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Public catalog
	courseGroup.Get("/", controllers.GetCourses)

	// Specific routes must be registered before the parameterized ones
	courseGroup.Get("/enrolled", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), controllers.GetEnrolledCourses)
	courseGroup.Get("/my-courses", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), controllers.GetMyCourses)
	courseGroup.Get("/faculty/:facultyId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), controllers.GetCoursesByFaculty)

	courseGroup.Get("/:id", controllers.GetCourseDetails)

	// Student enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), controllers.EnrollInCourse)
	courseGroup.Delete("/:id/unenroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), controllers.UnenrollFromCourse)

	// Faculty course management
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), controllers.DeleteCourse)
	courseGroup.Put("/:id/restore", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), controllers.RestoreCourse)
	courseGroup.Delete("/:id/permanent", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), controllers.PermanentDeleteCourse)

	// Faculty roster management
	courseGroup.Get("/:id/students", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), controllers.GetEnrolledStudents)
	courseGroup.Delete("/:courseId/students/:studentId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFaculty), controllers.FacultyUnenrollStudent)
}
