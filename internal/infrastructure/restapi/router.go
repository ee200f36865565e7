package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions toggles the optional routes.
type RouterOptions struct {
	EnablePprof bool

	// SwaggerSpecPath serves the OpenAPI document and the UI when set.
	SwaggerSpecPath string
}

// SetupRouter builds the gin engine with the dashboard page, the JSON API and
// the operational endpoints.
func SetupRouter(dashboard *DashboardHandler, cache *CacheHandler, zapLogger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(pageTemplate)

	router.GET("/", dashboard.PageHandler)
	router.GET("/health", dashboard.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/chains", dashboard.GetChainsHandler)
		v1.GET("/vaults", dashboard.GetVaultsHandler)
		v1.GET("/vaults/:address", dashboard.GetVaultHandler)
		v1.GET("/vaults/:address/pps", dashboard.GetPPSHandler)

		v1.POST("/cache/clear", cache.ClearHandler)
		v1.DELETE("/cache/vaults/:address", cache.ClearVaultHandler)
	}

	if opts.EnablePprof {
		pprofGroup := router.Group("/debug/pprof")
		{
			pprofGroup.GET("/", gin.WrapF(pprof.Index))
			pprofGroup.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			pprofGroup.GET("/profile", gin.WrapF(pprof.Profile))
			pprofGroup.POST("/symbol", gin.WrapF(pprof.Symbol))
			pprofGroup.GET("/symbol", gin.WrapF(pprof.Symbol))
			pprofGroup.GET("/trace", gin.WrapF(pprof.Trace))
			pprofGroup.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
			pprofGroup.GET("/block", gin.WrapH(pprof.Handler("block")))
			pprofGroup.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
			pprofGroup.GET("/heap", gin.WrapH(pprof.Handler("heap")))
			pprofGroup.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
			pprofGroup.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
		}
	}

	if opts.SwaggerSpecPath != "" {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecPath)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.yaml")))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})

	return router
}
