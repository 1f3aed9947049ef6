package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/server"
	"github.com/scenebridge/scenebridge/tool"
	"github.com/scenebridge/scenebridge/tools/asset"
	"github.com/scenebridge/scenebridge/tools/exec"
	"github.com/scenebridge/scenebridge/tools/scene"
)

type options struct {
	Addr       string        `short:"a" long:"addr" description:"listen address (host:port), overrides SCENEBRIDGE_HOST/PORT"`
	Workers    int           `short:"w" long:"workers" description:"connection worker pool capacity"`
	Timeout    time.Duration `short:"t" long:"timeout" description:"command execution timeout"`
	Tick       time.Duration `long:"tick" description:"host run loop tick interval" default:"50ms"`
	AssetDir   string        `long:"asset-dir" description:"asset download directory" default:"assets"`
	UnsafeExec bool          `long:"unsafe-exec" description:"register the execute_code capability (runs with server privileges)"`
}

// main runs the 3D-host command bridge. The main goroutine plays the host's
// run loop: it is the affinity thread every command body executes on.
func main() {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, os.Args[1:]); err != nil {
		os.Exit(1)
	}
	cfg, err := server.ConfigFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := tool.NewRegistry()
	scene.New(scene.DefaultScene()).Register(registry)
	asset.New(&asset.Config{DownloadDir: opts.AssetDir}).Register(registry)
	if opts.UnsafeExec {
		execService, err := exec.New(ctx)
		if err != nil {
			log.Fatalf("enable execute_code: %v", err)
		}
		execService.Register(registry)
		slog.Warn("execute_code capability enabled")
	}

	queue := bridge.NewTickQueue()
	serverOptions := []server.Option{server.WithConfig(cfg)}
	if opts.Addr != "" {
		serverOptions = append(serverOptions, server.WithAddr(opts.Addr))
	}
	if opts.Workers > 0 {
		serverOptions = append(serverOptions, server.WithWorkers(opts.Workers))
	}
	if opts.Timeout > 0 {
		serverOptions = append(serverOptions, server.WithTimeout(opts.Timeout))
	}
	srv, err := server.New(queue, registry, serverOptions...)
	if err != nil {
		log.Fatalf("create server: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}

	slog.Info("tools registered", "tools", registry.Names())
	bridge.NewLoop(queue, opts.Tick).Run(ctx)
	srv.Stop()
}
