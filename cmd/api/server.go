package api

import (
	// 外部依赖
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"
	cobra "github.com/spf13/cobra"

	// 内部引用
	config "github.com/chemstack/labstock/internal/config"
	auth "github.com/chemstack/labstock/pkg/middleware/auth"
	db "github.com/chemstack/labstock/pkg/middleware/db"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	redis "github.com/chemstack/labstock/pkg/middleware/redis"
	trace "github.com/chemstack/labstock/pkg/middleware/trace"
	utils "github.com/chemstack/labstock/pkg/utils"
	web "github.com/chemstack/labstock/pkg/web"
)

func NewWeb() *cobra.Command {
	return &cobra.Command{
		Use:          "apiserver",
		Long:         "Start the inventory API server",
		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         newRouter,
		PostRunE:     cleanWebResource,
	}
}

func initWeb(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:   fmt.Sprintf("%s-%s", conf.Server.Platform, conf.Server.Service),
		Version:       conf.Trace.Version,
		TraceEndpoint: conf.Trace.TraceEndpoint,
	})
	initDB(cmd.Context())

	// Redis backs the session revocation list when present. Without it the
	// in-memory store still works, it just forgets revocations on restart.
	if conf.Redis.Enable {
		redis.InitRedis(cmd.Context(), &redis.Redis{
			Host:     conf.Redis.Host,
			Port:     conf.Redis.Port,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		auth.InitSessions(redis.NewSessionStore())
	}
	return nil
}

func newRouter(cmd *cobra.Command, _ []string) error {
	router := gin.New()
	web.NewRouter(cmd.Root().Context(), router)

	conf := config.Global()
	addr := ":" + strconv.Itoa(conf.Server.Port)
	httpServer := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       30 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	fmt.Printf("API server starting on http://0.0.0.0:%d\n", conf.Server.Port)

	utils.SafelyGo(func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf(cmd.Context(), "start server err: %v", err)
		}
	}, func(err error) {
		logger.Errorf(cmd.Context(), "run http server err: %+v", err)
		os.Exit(1)
	})

	<-cmd.Context().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("shut down server err: %+v", err)
	}
	return nil
}

func cleanWebResource(cmd *cobra.Command, _ []string) error {
	if config.Global().Redis.Enable {
		redis.CloseRedis(cmd.Context())
	}
	db.CloseDB(cmd.Context())
	trace.Shutdown(cmd.Context())
	return nil
}

func initDB(ctx context.Context) {
	conf := config.Global()
	db.InitDB(ctx, &db.Config{
		Driver: db.Driver(conf.Database.Driver),
		Path:   conf.Database.Path,
		Host:   conf.Database.Host,
		Port:   conf.Database.Port,
		User:   conf.Database.User,
		PW:     conf.Database.Password,
		DBName: conf.Database.Name,
		LogConf: db.LogConf{
			Level: conf.Log.LogLevel,
		},
	})
}
