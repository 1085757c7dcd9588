package app

import (
	"exam_hub_backend/docs"
	"exam_hub_backend/internal/middleware"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(&a.Config.JWT))
	{
		a.registerExamRoutes(authGroup, c)
		a.registerAttemptRoutes(authGroup, c)
		a.registerSubmissionRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		// 试卷文件链接直接嵌入页面，不要求登录
		public.GET("/exams/file/:id", c.exam.GetExamFile)
	}
}

func (a *App) registerExamRoutes(group *gin.RouterGroup, c *controllers) {
	exams := group.Group("/exams")
	{
		exams.GET("", c.exam.ListExams)
		exams.GET("/:id", c.exam.GetExam)

		teacher := exams.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("", c.exam.CreateExam)
			teacher.PUT("/:id/cancel", c.exam.CancelExam)
			teacher.PUT("/:id/activate", c.exam.ActivateExam)
		}
	}
}

func (a *App) registerAttemptRoutes(group *gin.RouterGroup, c *controllers) {
	attempts := group.Group("/exam-attempts")
	attempts.Use(middleware.RoleMiddleware(model.Student))
	{
		attempts.POST("/start", c.attempt.StartAttempt)
		attempts.GET("/:id", c.attempt.GetAttemptStatus)
		attempts.PUT("/:id/time", c.attempt.UpdateTime)
		attempts.PUT("/:id/pause", c.attempt.PauseAttempt)
		attempts.PUT("/:id/complete", c.attempt.CompleteAttempt)
	}
}

func (a *App) registerSubmissionRoutes(group *gin.RouterGroup, c *controllers) {
	submissions := group.Group("/submissions")
	{
		submissions.POST("", middleware.RoleMiddleware(model.Student), c.submission.SubmitAnswer)
		submissions.GET("", middleware.RoleMiddleware(model.Teacher, model.Admin), c.submission.ListSubmissions)
		submissions.GET("/file/:id", c.submission.GetAnswerFile)
		submissions.GET("/:id", c.submission.ListExamSubmissions)
	}
}
