package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/magallanes/coursecatalog/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	health controllers.HealthChecker,
) {
	router.GET("/", courseController.Index)
	router.GET("/health", controllers.Health(health))

	api := router.Group("/api")
	{
		courses := api.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/bsis", courseController.GetBSISCourses)
			courses.GET("/bsit", courseController.GetBSITCourses)
		}

		api.GET("/backend-courses", courseController.GetBackendCourses)
		api.GET("/course-details", courseController.GetCourseDetails)
	}
}
