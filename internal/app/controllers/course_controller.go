package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magallanes/coursecatalog/internal/app/models"
	"github.com/magallanes/coursecatalog/internal/app/models/dto"
	"github.com/magallanes/coursecatalog/internal/app/services"
	"github.com/magallanes/coursecatalog/internal/middleware"
)

// CourseController handles course catalog requests
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// Index answers the root path with a plain-text greeting
func (c *CourseController) Index(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Hello World!")
}

// GetAllCourses returns the full course document
// @Summary Get all courses
// @Description Returns the catalog document grouped by academic year
// @Tags courses
// @Produce json
// @Success 200 {array} models.Year "Course document"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	years, err := c.courseService.AllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, years)
}

// GetBSISCourses returns the courses of the BSIS program
// @Summary Get BSIS courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/courses/bsis [get]
func (c *CourseController) GetBSISCourses(ctx *gin.Context) {
	c.coursesByTag(ctx, models.DegreeBSIS)
}

// GetBSITCourses returns the courses of the BSIT program
// @Summary Get BSIT courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/courses/bsit [get]
func (c *CourseController) GetBSITCourses(ctx *gin.Context) {
	c.coursesByTag(ctx, models.DegreeBSIT)
}

func (c *CourseController) coursesByTag(ctx *gin.Context, tag string) {
	courses, err := c.courseService.CoursesByTag(ctx, tag)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// GetBackendCourses returns backend courses in alphabetical order
// @Summary Get backend courses
// @Description Courses tagged Database, System, Software, Enterprise, Web or Information, sorted by description
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/backend-courses [get]
func (c *CourseController) GetBackendCourses(ctx *gin.Context) {
	courses, err := c.courseService.BackendCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// GetCourseDetails returns the name and specialization of every course
// @Summary Get course details
// @Tags courses
// @Produce json
// @Success 200 {array} models.CourseDetail
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/course-details [get]
func (c *CourseController) GetCourseDetails(ctx *gin.Context) {
	details, err := c.courseService.CourseDetails(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// HealthChecker reports whether the catalog is loaded
type HealthChecker interface {
	Loaded() bool
}

// Health reports catalog availability
func Health(checker HealthChecker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !checker.Loaded() {
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: dto.HealthStatusUnavailable})
			return
		}
		ctx.JSON(http.StatusOK, dto.HealthResponse{Status: dto.HealthStatusOK})
	}
}
