package routes

import (
	"github.com/gin-gonic/gin"

	"studentdesk/internal/app/controllers"
	"studentdesk/internal/app/models"
	"studentdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	homeController *controllers.HomeController,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public routes ---
	router.GET("/", homeController.Home)
	router.GET("/initdb", homeController.InitDB)

	router.GET("/login", authController.ShowLogin)
	router.POST("/login", authController.Login)
	router.GET("/logout", authController.Logout)

	// --- Session-protected routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.SessionRequired())
	{
		// User registration stays admin-only.
		register := authenticated.Group("/register")
		register.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		register.Use(authMiddleware.CSRFGuard())
		{
			register.GET("", authController.ShowRegister)
			register.POST("", authController.Register)
		}

		students := authenticated.Group("/students")
		students.Use(authMiddleware.CSRFGuard())
		{
			students.GET("", studentController.List)
			students.GET("/new", studentController.ShowCreate)
			students.POST("/new", studentController.Create)
			students.GET("/:id", studentController.View)
			students.GET("/:id/edit", studentController.ShowEdit)
			students.POST("/:id/edit", studentController.Edit)
			students.POST("/:id/delete", studentController.Delete)
		}
	}
}
