package restapi

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"wallet_inspector/docs"
	"wallet_inspector/internal/config"
	"wallet_inspector/internal/infrastructure/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// swaggerSpecPath serves the OpenAPI document consumed by the Swagger UI.
const swaggerSpecPath = "/docs/swagger.yaml"

// RouterOptions holds the settings for the outer HTTP surface.
type RouterOptions struct {
	CORS        config.CORSConfig
	RateLimiter *ratelimit.IPRateLimiter
	Swagger     config.SwaggerConfig
	Pprof       bool
}

// SetupRouter configures and returns the Gin router.
func SetupRouter(walletHandler *WalletHandler, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(cors.New(corsConfig(opts.CORS)))
	router.Use(ZapLoggerMiddleware(logger))
	router.Use(RecoveryHandler(logger))
	router.Use(FaultResponder(logger))

	router.GET("/health", walletHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(opts.RateLimiter, logger))
	{
		api.GET("/chains", walletHandler.ListChains)

		wallet := api.Group("/wallet")
		wallet.GET("/:address", walletHandler.GetWalletInfo)
		wallet.GET("/:address/balance", walletHandler.GetNativeBalance)
		wallet.GET("/:address/tokens", walletHandler.GetTokenBalances)
		wallet.GET("/:address/transactions", walletHandler.GetTransactions)
	}

	if opts.Swagger.Enabled {
		registerSwaggerRoutes(router, opts.Swagger.Path)
		logger.Info("Swagger UI enabled", zap.String("path", opts.Swagger.Path+"/index.html"))
	}

	if opts.Pprof {
		registerPprofRoutes(router)
		logger.Info("Pprof endpoints enabled under /debug/pprof")
	}

	router.NoRoute(NotFoundHandler)

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	origin := cfg.AllowedOrigin
	if origin == "" || origin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(origin, ",")
		for i := range corsCfg.AllowOrigins {
			corsCfg.AllowOrigins[i] = strings.TrimSpace(corsCfg.AllowOrigins[i])
		}
		corsCfg.AllowCredentials = cfg.AllowCredentials == nil || *cfg.AllowCredentials
	}
	corsCfg.AllowMethods = []string{"GET", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return corsCfg
}

func registerSwaggerRoutes(router *gin.Engine, path string) {
	path = "/" + strings.Trim(path, "/")
	router.GET(swaggerSpecPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", docs.SwaggerYAML)
	})
	router.GET(path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecPath)))
}

func registerPprofRoutes(router *gin.Engine) {
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/block", gin.WrapH(pprof.Handler("block")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		pprofRouter.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
		pprofRouter.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
	}
}
