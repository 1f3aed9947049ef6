package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/server"
	"github.com/scenebridge/scenebridge/tool"
	"github.com/scenebridge/scenebridge/tools/material"
)

type options struct {
	Addr      string        `short:"a" long:"addr" description:"listen address (host:port)" default:"localhost:9877"`
	Timeout   time.Duration `short:"t" long:"timeout" description:"command execution timeout" default:"5m"`
	Generator string        `short:"g" long:"generator" description:"texture generator executable" required:"true"`
	OutputDir string        `short:"o" long:"output" description:"generated texture output directory" default:"pbr_outputs"`
}

// main runs the material generation command server. Generation has no
// host-thread affinity, so commands execute on a dedicated serial queue
// instead of a run loop tick.
func main() {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, os.Args[1:]); err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := material.New(ctx, &material.Config{
		Command:   opts.Generator,
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		log.Fatalf("create material service: %v", err)
	}
	registry := tool.NewRegistry()
	service.Register(registry)

	queue := bridge.NewSerialQueue(16)
	srv, err := server.New(queue, registry,
		server.WithAddr(opts.Addr),
		server.WithTimeout(opts.Timeout),
	)
	if err != nil {
		log.Fatalf("create server: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}

	<-ctx.Done()
	queue.Close()
	srv.Stop()
}
