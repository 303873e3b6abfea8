package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/foodiego/config"
	"github.com/yeremiapane/foodiego/controllers"
	"github.com/yeremiapane/foodiego/events"
	"github.com/yeremiapane/foodiego/live"
	"github.com/yeremiapane/foodiego/middlewares"
	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

// Options carries the process-wide collaborators of the HTTP layer. Nil
// fields get working defaults.
type Options struct {
	Config    config.Config
	Hub       *live.Hub
	Publisher events.Publisher
	Payments  *services.PaymentService
	PageCache *middlewares.PageCache
	Tracing   bool
}

func (o *Options) defaults() {
	if o.Hub == nil {
		o.Hub = live.NewHub()
	}
	if o.Publisher == nil {
		o.Publisher = events.Noop{}
	}
	if o.Payments == nil {
		o.Payments = services.NewPaymentService(o.Config.StripeSecretKey, o.Config.StripeConfigured(), o.Config.StripeCurrency)
	}
	if o.PageCache == nil {
		o.PageCache = middlewares.NewPageCache(o.Config.PageCacheTTL)
	}
	if o.Config.UploadDir == "" {
		o.Config.UploadDir = filepath.Join("public", "uploads")
	}
}

var imageSuffixes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// imagesOnly blocks anything but image files under /uploads.
func imagesOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, services.UploadURLPrefix) {
			ext := strings.ToLower(filepath.Ext(c.Request.URL.Path))
			allowed := false
			for _, suffix := range imageSuffixes {
				if ext == suffix {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	}
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	opts.defaults()
	cfg := opts.Config

	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Metrics())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(imagesOnly())
	r.Use(middlewares.SessionMiddleware())

	r.Static("/uploads", cfg.UploadDir)

	// Mutations drop cached pages and tell connected dashboards.
	revalidator := services.Revalidators{opts.PageCache, opts.Hub}
	publisher := events.Multi{opts.Hub, opts.Publisher}

	authService := services.NewAuthService(db)
	categoryService := services.NewCategoryService(db, revalidator)
	menuService := services.NewMenuService(db, revalidator)
	orderService := services.NewOrderService(db, revalidator, publisher)
	uploadService := services.NewUploadService(cfg.UploadDir)

	userCtrl := controllers.NewUserController(authService)
	categoryCtrl := controllers.NewCategoryController(categoryService)
	menuCtrl := controllers.NewMenuController(menuService)
	orderCtrl := controllers.NewOrderController(orderService)
	adminCtrl := controllers.NewAdminController(orderService)
	receiptCtrl := controllers.NewReceiptController(orderService)
	paymentCtrl := controllers.NewPaymentController(opts.Payments)
	uploadCtrl := controllers.NewUploadController(uploadService)
	liveCtrl := controllers.NewLiveController(opts.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Rate limiter untuk login/register
	public := api.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Storefront pages, cached until a mutation revalidates them.
	pages := opts.PageCache
	// Each listing embeds both categories and menu items, so either admin
	// page's revalidation evicts it.
	catalogue := []string{services.PathHome, services.PathAdminCategories, services.PathAdminMenu}
	api.GET("/categories", pages.Middleware(catalogue...), categoryCtrl.GetCategories)
	api.GET("/categories/:cat_id/menu", pages.Middleware(catalogue...), menuCtrl.GetMenuItemsByCategory)
	api.GET("/menu", pages.Middleware(catalogue...), menuCtrl.GetMenuItems)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.RequireSession())
	{
		auth.GET("/me", userCtrl.GetProfile)
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders/:order_id/receipt", middlewares.ReceiptLoggerMiddleware(), receiptCtrl.DownloadReceipt)
	}

	payments := api.Group("/")
	payments.Use(middlewares.PaymentSecurityHeaders(), middlewares.PaymentRateLimiter(), middlewares.LogPaymentRequest())
	{
		payments.POST("/create-payment-intent", paymentCtrl.CreatePaymentIntent)
	}

	api.POST("/upload", middlewares.RequireRole(models.RoleAdmin), uploadCtrl.Upload)

	admin := api.Group("/admin")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		admin.GET("/stats", adminCtrl.GetDashboardStats)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PUT("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PUT("/menu/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)
	}

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		wsGroup.GET("/live", liveCtrl.Connect)
	}

	return r
}
