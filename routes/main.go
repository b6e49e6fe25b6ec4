package routes

import (
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/config"
	_ "github.com/wangyukai585/BioAlgoDB/docs"
	"github.com/wangyukai585/BioAlgoDB/handlers/algorithms"
	"github.com/wangyukai585/BioAlgoDB/handlers/auth"
	"github.com/wangyukai585/BioAlgoDB/handlers/changes"
	"github.com/wangyukai585/BioAlgoDB/handlers/export"
	"github.com/wangyukai585/BioAlgoDB/handlers/labs"
	"github.com/wangyukai585/BioAlgoDB/handlers/papers"
	"github.com/wangyukai585/BioAlgoDB/handlers/problems"
	"github.com/wangyukai585/BioAlgoDB/handlers/stats"
	"github.com/wangyukai585/BioAlgoDB/handlers/tools"
	"github.com/wangyukai585/BioAlgoDB/handlers/users"
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/realtime"
	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const ErrRouteNotFound = "resource not found"

// Dependencies are the long-lived collaborators the router is built from
type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *logrus.Logger
	Hub     *realtime.Hub
	Limiter middleware.Limiter
}

// NewRouter builds the gin engine with every route registered
func NewRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(deps.Config.GinMode)
	response.UseJSONFieldNames()

	r := gin.New()
	r.Use(middleware.LoggerMiddleware(deps.Logger))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(deps.Config)))

	Register(r, deps)
	return r
}

// Register the endpoints of the API
func Register(r *gin.Engine, deps Dependencies) {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(deps.Config.RateLimit)
	}
	opts := services.Options{
		Logger:    deps.Logger,
		JWTSecret: deps.Config.JWTSecret(),
		TokenTTL:  deps.Config.JWTExpiration,
	}
	if deps.Hub != nil {
		opts.Publisher = deps.Hub
	}
	svc := services.New(deps.DB, opts)
	secret := deps.Config.JWTSecret()

	RegisterRootRoutes(r)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, ErrRouteNotFound)
	})

	api := r.Group("/api")

	// Add metrics middleware to all routes
	api.Use(middleware.MetricsMiddleware())
	api.Use(middleware.RateLimiterMiddleware(limiter))

	RegisterHealthRoutes(api)
	stats.RegisterRoutes(api, svc.Stats)
	problems.RegisterRoutes(api, svc.Problems)
	algorithms.RegisterRoutes(api, svc.Algorithms, secret)
	tools.RegisterRoutes(api, svc.Tools, secret)
	labs.RegisterRoutes(api, svc.Labs, secret)
	papers.RegisterRoutes(api, svc.Papers, secret)
	auth.RegisterRoutes(api, svc.Auth)
	users.RegisterRoutes(api, svc.Users, secret)
	export.RegisterRoutes(api, svc.Export)
	if deps.Hub != nil {
		changes.RegisterRoutes(api, deps.Hub)
	}

	RegisterMetricsRoutes(api)
	RegisterSwaggerRoutes(api)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	return c
}
