package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ughe/wer/server"
)

func serveCommand(ctx context.Context, addr, static string, readTimeout time.Duration) error {
	gin.SetMode(gin.ReleaseMode)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	return server.Run(ctx, server.Config{
		Addr:            addr,
		StaticDir:       static,
		ReadTimeout:     readTimeout,
		ShutdownTimeout: 30 * time.Second,
	})
}
