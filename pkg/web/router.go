package web

import (
	// 外部依赖
	"context"
	"fmt"

	cors "github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	// 内部引用
	config "github.com/chemstack/labstock/internal/config"
	auth "github.com/chemstack/labstock/pkg/middleware/auth"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	health "github.com/chemstack/labstock/pkg/web/views/health"
	login "github.com/chemstack/labstock/pkg/web/views/login"
	reagent "github.com/chemstack/labstock/pkg/web/views/reagent"
	user "github.com/chemstack/labstock/pkg/web/views/user"
)

func NewRouter(ctx context.Context, g *gin.Engine) {
	installMiddleware(g)
	installURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
	g.Use(gin.Recovery())
}

func installURL(_ context.Context, g *gin.Engine) {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)

	{
		l := login.NewHandle()
		authGroup := api.Group("/auth")
		authGroup.POST("/login", l.Login)
		authGroup.POST("/register", l.Register)
		authGroup.POST("/logout", auth.Auth(), l.Logout)
		authGroup.GET("/me", auth.Auth(), l.Me)
	}

	v1 := api.Group("/v1", auth.Auth())

	{
		r := reagent.NewHandle()
		reagentGroup := v1.Group("/reagents")
		reagentGroup.POST("", r.Add)
		reagentGroup.GET("", r.Query)
		reagentGroup.GET("/detail", r.Get)
		reagentGroup.PUT("", r.Update)
		reagentGroup.DELETE("", r.Delete)
		reagentGroup.POST("/consume", r.Consume)
		reagentGroup.GET("/expiring", r.Expiring)
		reagentGroup.GET("/usage", r.Usage)
		reagentGroup.GET("/usage/export", r.ExportUsage)
		reagentGroup.GET("/export", r.Export)
		reagentGroup.GET("/cas", r.QueryCAS)

		// Wholesale replacement is admin only.
		reagentGroup.POST("/import", auth.RequireAdmin(), r.Import)
		reagentGroup.DELETE("/all", auth.RequireAdmin(), r.DeleteAll)
	}

	{
		u := user.NewHandle()
		userGroup := v1.Group("/users", auth.RequireAdmin())
		userGroup.GET("", u.List)
		userGroup.PUT("/role", u.SetRole)
	}
}
