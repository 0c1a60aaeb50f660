package routes

import (
	"time"

	_ "bluemoon-fee-service/docs"
	"bluemoon-fee-service/internal/app/controllers"
	"bluemoon-fee-service/internal/app/middleware"
	"bluemoon-fee-service/internal/domain/services/container"
	"bluemoon-fee-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	// 认证路由，登录接口单独收紧限流
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 会计及管理员均可访问的业务路由
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAccountant())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 住户路由
	householdGroup := auth.Group("/households")
	householdGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleHouseholdFunc(container, "getHouseholds"))
	householdGroup.GET("/search", controllers.HandleHouseholdFunc(container, "searchHouseholds"))
	householdGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleHouseholdFunc(container, "getHousehold"))
	householdGroup.POST("", controllers.HandleHouseholdFunc(container, "createHousehold"))
	householdGroup.PUT("/:id", controllers.HandleHouseholdFunc(container, "updateHousehold"))
	householdGroup.DELETE("/:id", controllers.HandleHouseholdFunc(container, "deleteHousehold"))
	householdGroup.GET("/:id/residents", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleHouseholdFunc(container, "getHouseholdResidents"))
	householdGroup.PUT("/:id/head", controllers.HandleHouseholdFunc(container, "setHeadResident"))
	householdGroup.GET("/:id/fee-status", controllers.HandleHouseholdFunc(container, "getHouseholdFeeStatus"))

	// 居民路由
	residentGroup := auth.Group("/residents")
	residentGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleResidentFunc(container, "getResidents"))
	residentGroup.GET("/search", controllers.HandleResidentFunc(container, "searchResidents"))
	residentGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleResidentFunc(container, "getResident"))
	residentGroup.POST("", controllers.HandleResidentFunc(container, "createResident"))
	residentGroup.PUT("/:id", controllers.HandleResidentFunc(container, "updateResident"))
	residentGroup.DELETE("/:id", controllers.HandleResidentFunc(container, "deleteResident"))

	// 费用项路由
	feeGroup := auth.Group("/fees")
	feeGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleFeeFunc(container, "getFees"))
	feeGroup.GET("/active", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleFeeFunc(container, "getActiveFees"))
	feeGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleFeeFunc(container, "getFee"))
	feeGroup.POST("", controllers.HandleFeeFunc(container, "createFee"))
	feeGroup.PUT("/:id", controllers.HandleFeeFunc(container, "updateFee"))
	feeGroup.DELETE("/:id", controllers.HandleFeeFunc(container, "deleteFee"))

	// 缴费路由
	paymentGroup := auth.Group("/payments")
	paymentGroup.GET("", controllers.HandlePaymentFunc(container, "getPayments"))
	paymentGroup.GET("/search", controllers.HandlePaymentFunc(container, "searchPayments"))
	paymentGroup.GET("/export", controllers.HandlePaymentFunc(container, "exportPayments"))
	paymentGroup.GET("/summary/status", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandlePaymentFunc(container, "getStatusSummary"))
	paymentGroup.GET("/summary/revenue", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandlePaymentFunc(container, "getRevenueSummary"))
	paymentGroup.GET("/household/:id", controllers.HandlePaymentFunc(container, "getPaymentsByHousehold"))
	paymentGroup.GET("/fee/:id", controllers.HandlePaymentFunc(container, "getPaymentsByFee"))
	paymentGroup.GET("/:id", controllers.HandlePaymentFunc(container, "getPayment"))
	paymentGroup.POST("", controllers.HandlePaymentFunc(container, "createPayment"))
	paymentGroup.PUT("/:id", controllers.HandlePaymentFunc(container, "updatePayment"))
	paymentGroup.POST("/:id/refund", controllers.HandlePaymentFunc(container, "refundPayment"))
	paymentGroup.DELETE("/:id", controllers.HandlePaymentFunc(container, "deletePayment"))

	// 统计路由
	statisticGroup := auth.Group("/statistics")
	statisticGroup.GET("/dashboard", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleStatisticFunc(container, "getDashboard"))

	// 仅管理员可访问的用户管理路由
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateAdmin())
	admin.Use(middleware.IPRateLimiter(30, 50))

	userGroup := admin.Group("/users")
	userGroup.GET("", controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// 修改自己密码的路由对会计也开放
	auth.PUT("/users/password", controllers.HandleUserFunc(container, "changePassword"))
}
