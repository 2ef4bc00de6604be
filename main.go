package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ecopath/server/internal/api"
	"ecopath/server/internal/config"
	"ecopath/server/internal/database"
	"ecopath/server/internal/models"
	"ecopath/server/internal/services"
	"ecopath/server/internal/utils"
)

func main() {
	// Загружаем переменные окружения из .env файла (если существует)
	// Игнорируем ошибку, если файл не найден (для production окружений)
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ .env файл не найден, используем переменные окружения системы")
	} else {
		log.Printf("✅ Переменные окружения загружены из .env файла")
	}

	// Загрузка конфигурации
	cfg := config.Load()

	// Логируем наличие DATABASE_URL (без пароля)
	if cfg.DatabaseURL != "" {
		safeURL := cfg.DatabaseURL
		if idx := strings.Index(safeURL, "@"); idx > 0 {
			if schemeIdx := strings.Index(safeURL, "://"); schemeIdx > 0 {
				safeURL = safeURL[:schemeIdx+3] + "***@" + safeURL[idx+1:]
			}
		}
		log.Printf("📋 DATABASE_URL установлен: %s", safeURL)
	}

	// Подключение к PostgreSQL
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Printf("❌ PostgreSQL connection failed: %v", err)
		log.Printf("⚠️ Продолжаем без БД (ограниченная функциональность: только чистые расчёты)")
		db = nil
	} else {
		defer database.ClosePostgres(db)

		// Выполняем миграции и сеем дефолтные справочники
		if err := models.AutoMigrate(db); err != nil {
			log.Printf("❌ Migration failed: %v", err)
			log.Printf("⚠️ Continuing with limited functionality")
		} else {
			log.Println("✅ Database migrations completed")
			if err := models.SeedDefaults(db); err != nil {
				log.Printf("⚠️ Ошибка сидинга дефолтных данных: %v", err)
			}
		}
	}

	// Подключение к Redis
	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	var redisUtil *utils.RedisClient
	if err != nil {
		log.Printf("⚠️ Redis connection failed: %v (continuing without Redis)", err)
		redisClient = nil
		redisUtil = nil
	} else {
		redisUtil = utils.NewRedisClient(redisClient)
	}
	defer database.CloseRedis(redisClient)

	// Инициализация сервиса коэффициентов выбросов.
	// Работает и без БД: тогда разрешение идёт только по дефолтной таблице
	factorService := services.NewFactorService(db, redisUtil)
	factorService.SetReloadInterval(time.Duration(cfg.FactorReloadMinutes) * time.Minute)
	if db != nil {
		if err := factorService.LoadFactors(); err != nil {
			log.Printf("⚠️ Failed to load factors from DB: %v (using default factors)", err)
		} else {
			log.Println("✅ Emission factors loaded from database")
			// Запускаем автообновление (Redis Pub/Sub + fallback таймер)
			factorService.StartAutoReload()
		}
	} else {
		log.Println("⚠️ Factor table served from built-in defaults: PostgreSQL not available")
	}

	// Сервис расчёта футпринта (чистые вычисления, БД не требуется)
	calcService := services.NewCalcService(factorService)

	// Инициализация сервиса отчётов
	var reportService *services.ReportService
	if db != nil {
		reportService = services.NewReportService(db, factorService, redisUtil)
		log.Println("✅ Report service initialized")
	} else {
		log.Println("⚠️ Report service not started: PostgreSQL not available")
	}

	// Инициализация справочных сервисов
	var mineService *services.MineService
	var profileService *services.ProfileService
	if db != nil {
		mineService = services.NewMineService(db)
		profileService = services.NewProfileService(db)
		log.Println("✅ Mine and Profile services initialized")
	} else {
		log.Println("⚠️ Mine/Profile services not started: PostgreSQL not available")
	}

	// Kafka publisher для событий отчётов (no-op без KAFKA_BROKERS)
	eventPublisher := api.NewEventPublisher(cfg.KafkaBrokers, cfg.KafkaUsername, cfg.KafkaPassword, cfg.KafkaCACert)
	defer eventPublisher.Close()
	if cfg.KafkaBrokers == "" {
		log.Println("⚠️ KAFKA_BROKERS не установлен, события отчётов не публикуются")
	}

	// Отключаем debug-логи gin
	gin.SetMode(gin.ReleaseMode)

	// Создаем пустой движок без лишних прослоек
	r := gin.New()

	// Health check endpoints (должны быть до CORS для Railway)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "EcoPath API",
			"version": "1.0.0",
		})
	})

	// Логирование всех запросов
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf("🌐 %s %s - Status: %d - Latency: %v", method, path, status, latency)
	})

	// CORS для фронтенда
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Запускаем хаб рассылки сводок дашбордам
	go api.DashboardHub.Run()

	// API routes
	apiGroup := r.Group("/api/v1")

	// Чистые расчёты доступны всегда, даже без БД
	calcController := api.NewCalcController(calcService)
	pathwaysController := api.NewPathwaysController()
	offsetController := api.NewOffsetController()
	apiGroup.POST("/calc/aggregate", calcController.Aggregate)         // Футпринт по активностям
	apiGroup.POST("/pathways/aggregate", pathwaysController.Aggregate) // Избегнутые выбросы
	apiGroup.POST("/offsets/aggregate", offsetController.Aggregate)    // Офсеты и кредиты

	// WebSocket для дашбордов
	apiGroup.GET("/ws", api.ServeWS)

	// Справочник коэффициентов (админ)
	if db != nil {
		factorController := api.NewFactorController(factorService)
		factorGroup := apiGroup.Group("/factors")
		{
			factorGroup.GET("", factorController.GetFactors)          // Список коэффициентов
			factorGroup.GET("/:id", factorController.GetFactor)       // Получить коэффициент
			factorGroup.POST("", factorController.CreateFactor)       // Создать коэффициент
			factorGroup.PUT("/:id", factorController.UpdateFactor)    // Обновить коэффициент
			factorGroup.DELETE("/:id", factorController.DeleteFactor) // Удалить коэффициент
		}
		log.Println("📋 Factor endpoints enabled: /api/v1/factors")
	} else {
		log.Println("⚠️ Factor endpoints not enabled: PostgreSQL not available")
	}

	// Справочник шахт
	if mineService != nil {
		mineController := api.NewMineController(mineService)
		mineGroup := apiGroup.Group("/mines")
		{
			mineGroup.GET("", mineController.GetMines)          // Список шахт
			mineGroup.POST("", mineController.CreateMine)       // Создать шахту
			mineGroup.PUT("/:id", mineController.UpdateMine)    // Обновить шахту
			mineGroup.DELETE("/:id", mineController.DeleteMine) // Удалить шахту
		}
		log.Println("📋 Mine endpoints enabled: /api/v1/mines")
	}

	// Профиль оператора
	if profileService != nil {
		profileController := api.NewProfileController(profileService)
		apiGroup.GET("/profile", profileController.GetProfile)    // Текущий профиль
		apiGroup.POST("/profile", profileController.UpsertProfile) // Создать/перезаписать
		apiGroup.PUT("/profile", profileController.PatchProfile)   // Обновить по mineId
		log.Println("📋 Profile endpoints enabled: /api/v1/profile")
	}

	// Отчёты и их записи
	if reportService != nil {
		reportController := api.NewReportController(reportService, api.DashboardHub, eventPublisher)
		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.POST("", reportController.CreateReport)                        // Создать отчёт
			reportGroup.POST("/current", reportController.EnsureCurrentReport)         // Дневной отчёт (get-or-create)
			reportGroup.GET("/latest/summary", reportController.GetLatestSummary)      // Сводка по свежему отчёту
			reportGroup.GET("/:id/summary", reportController.GetSummary)               // Сводка по отчёту
			reportGroup.POST("/:id/calc-entries", reportController.AddCalcEntry)       // Запись о потреблении
			reportGroup.POST("/:id/calc-entries/bulk", reportController.AddCalcEntriesBulk) // Пачка записей
			reportGroup.POST("/:id/pathways-entries", reportController.AddPathwaysEntry)    // Запись о снижении
			reportGroup.POST("/:id/offset-entries", reportController.AddOffsetEntry)        // Запись об офсетах
		}
		log.Println("📋 Report endpoints enabled: /api/v1/reports")
	} else {
		log.Println("⚠️ Report endpoints not enabled: PostgreSQL not available")
	}

	// Дашборд
	if db != nil {
		dashboardController := api.NewDashboardController(db)
		apiGroup.GET("/dashboard/summary", dashboardController.GetSummary) // Счетчики справочников
	}

	// Запуск на порту из конфига
	port := cfg.ServerPort
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📡 API доступен на http://0.0.0.0:%s/api/v1", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
