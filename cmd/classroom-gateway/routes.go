package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/handler"
	"github.com/noah-isme/classroom-gateway/internal/middleware"
	"github.com/noah-isme/classroom-gateway/internal/service"
	"github.com/noah-isme/classroom-gateway/pkg/config"
	"github.com/noah-isme/classroom-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-gateway/pkg/middleware/requestid"
)

type handlers struct {
	assignments *handler.AssignmentHandler
	submissions *handler.SubmissionHandler
	downloads   *handler.DownloadHandler
	enrollments *handler.EnrollmentHandler
	content     *handler.ContentHandler
	forms       *handler.FormHandler
	exports     *handler.ExportHandler
	activity    *handler.ActivityHandler
	metrics     *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, identity *service.IdentityService, h handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if h.exports != nil {
		// signed links are opened by the browser without a bearer token
		api.GET("/exports/:token", h.exports.Download)
	}

	secured := api.Group("")
	secured.Use(middleware.JWT(identity))
	teacher := middleware.RequireTeacher()
	student := middleware.RequireStudent()

	secured.GET("/metrics/summary", h.metrics.Summary)
	secured.GET("/forms", h.forms.Schemas)
	secured.POST("/forms/:schema/validate", h.forms.Validate)
	secured.GET("/downloads/current", h.downloads.State)
	secured.DELETE("/downloads/current", h.downloads.Cancel)
	secured.GET("/activity", h.activity.List)

	classroom := secured.Group("/classrooms/:classroomId")
	classroom.GET("/assignments", h.assignments.List)
	classroom.POST("/assignments", teacher, h.assignments.Create)
	classroom.POST("/materials", teacher, h.content.CreateMaterial)
	classroom.PUT("/materials/:materialId", teacher, h.content.UpdateMaterial)
	classroom.POST("/messages", h.content.SendMessage)
	classroom.PUT("/meetlink", teacher, h.content.SetMeetLink)
	classroom.GET("/enrollments/options", teacher, h.enrollments.Options)
	classroom.POST("/enrollments", teacher, h.enrollments.Enroll)

	assignment := classroom.Group("/assignments/:assignmentId")
	assignment.GET("", h.assignments.Get)
	assignment.PUT("", teacher, h.assignments.Update)
	assignment.DELETE("", teacher, h.assignments.Delete)
	assignment.GET("/download", h.downloads.Assignment)
	assignment.GET("/submission/download", student, h.downloads.OwnSubmission)
	assignment.GET("/submissions", teacher, h.submissions.List)
	assignment.POST("/submissions", student, h.submissions.Submit)
	assignment.DELETE("/submissions/:submissionId", student, h.submissions.Delete)
	assignment.GET("/submissions/:submissionId/download", teacher, h.downloads.ListedSubmission)
	if h.exports != nil {
		assignment.POST("/submissions/export", teacher, h.exports.Create)
	}

	return r
}
