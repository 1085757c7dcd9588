package app

import (
	"context"
	"exam_hub_backend/internal/config"
	"exam_hub_backend/internal/controller"
	"exam_hub_backend/internal/repository"
	"exam_hub_backend/internal/service"
	"exam_hub_backend/pkg/configwatcher"
	"exam_hub_backend/pkg/database"
	"exam_hub_backend/pkg/logger"
	"exam_hub_backend/pkg/monitoring"
	"exam_hub_backend/pkg/security"
	"exam_hub_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Storage         service.BlobStore
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	exam       *repository.ExamRepository
	attempt    *repository.ExamAttemptRepository
	submission *repository.SubmissionRepository
}

type services struct {
	uploadPolicy *service.UploadPolicy
	examCache    service.ExamCache
	exam         *service.ExamService
	fileResolver *service.FileResolver
	attempt      *service.AttemptService
	submission   *service.SubmissionService
}

type controllers struct {
	exam       *controller.ExamController
	attempt    *controller.AttemptController
	submission *controller.SubmissionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		exam:       repository.NewExamRepository(db),
		attempt:    repository.NewExamAttemptRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.uploadPolicy = service.NewUploadPolicy(cfg.Upload)
	s.examCache = service.NopExamCache{}
	if rdb != nil {
		s.examCache = service.NewRedisExamCache(rdb)
	}

	s.exam = service.NewExamService(repos.exam, a.Storage, s.examCache, s.uploadPolicy)
	s.fileResolver = service.NewFileResolver(repos.exam, a.Storage, s.examCache)
	s.attempt = service.NewAttemptService(repos.exam, repos.attempt, repos.submission)
	s.submission = service.NewSubmissionService(repos.exam, repos.submission, a.Storage, s.uploadPolicy)

	// 上传白名单随配置文件热更新
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.uploadPolicy.Update(newCfg.Upload)
		logger.Log.Info("Upload policy reloaded",
			zap.Strings("examContentTypes", newCfg.Upload.ExamContentTypes),
			zap.Strings("answerContentTypes", newCfg.Upload.AnswerContentTypes),
			zap.Int64("maxSizeMB", newCfg.Upload.MaxSizeMB),
		)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		exam:       controller.NewExamController(s.exam, s.fileResolver),
		attempt:    controller.NewAttemptController(s.attempt),
		submission: controller.NewSubmissionController(s.submission),
		health:     controller.NewHealthController(db, a.Storage),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	// 允许跨域的前端同样可以内嵌试卷 PDF
	router.Use(security.Secure(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.MaxRequests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已建立的连接组装应用，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage service.BlobStore) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Storage: storage,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != gin.TestMode {
		router.Use(gin.Logger())
	}
	// multipart 超出部分写入临时文件
	router.MaxMultipartMemory = 8 << 20
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	logLevel := gormlogger.Warn
	if cfg.Server.Mode == gin.DebugMode {
		logLevel = gormlogger.Info
	}
	// release 模式默认不迁移，需显式指定 -migrate
	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, migrate, logLevel)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	readyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.Ready(readyCtx); err != nil {
		// 存储暂不可用时仍然启动，文件接口返回 503
		logger.Log.Error("Storage is not ready", zap.String("type", cfg.Storage.Type), zap.Error(err))
	}

	// 监控初始化
	monitoring.Init()

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer("exam-hub", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app := New(cfg, db, rdb, storage)
	app.tracer = tp
	return app
}

// WatchConfig 监听配置文件变化并通知已注册的回调
func (a *App) WatchConfig(configDir string) {
	if !a.Config.Server.WatchConfig {
		return
	}
	go configwatcher.WatchConfig(filepath.Join(configDir, "config.yaml"), func(newCfg *config.Config) {
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
