package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/forcekit/mcp-salesforce/internal/config"
	"github.com/forcekit/mcp-salesforce/internal/logging"
	"github.com/forcekit/mcp-salesforce/internal/salesforce"
	"github.com/forcekit/mcp-salesforce/internal/tools/createuser"
	"github.com/forcekit/mcp-salesforce/internal/tools/profiles"
	"github.com/forcekit/mcp-salesforce/registry"
	"github.com/forcekit/mcp-salesforce/rpc"
	"github.com/forcekit/mcp-salesforce/transport"
)

func main() {
	httpAddr := flag.String("http", "", "serve over HTTP on this address instead of stdio")
	flag.Parse()

	if err := run(*httpAddr); err != nil {
		fmt.Fprintln(os.Stderr, "mcp-salesforce:", err)
		os.Exit(1)
	}
}

func run(httpAddr string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := salesforce.NewClient(cfg.Salesforce.LoginURL, cfg.Salesforce.APIVersion, salesforce.Credentials{
		Username:      cfg.Salesforce.Username,
		Password:      cfg.Salesforce.Password,
		SecurityToken: cfg.Salesforce.SecurityToken,
		ClientID:      cfg.Salesforce.ClientID,
		ClientSecret:  cfg.Salesforce.ClientSecret,
	}, salesforce.WithClientLogger(log))
	if err := client.Login(ctx); err != nil {
		return err
	}

	reg := registry.New()
	creator := createuser.New(client, log)
	registry.RegisterTool(reg, createuser.ToolName, creator.Create,
		registry.WithDescription(createuser.ToolDescription))

	source := profiles.New(client)
	registry.RegisterResource(reg, "Salesforce Profiles", profiles.ListURI, source.List,
		registry.WithResourceDescription("All profiles in the connected org"))
	registry.RegisterResourceTemplate(reg, "Salesforce Profile", profiles.TemplateURI, source.Read,
		registry.WithTemplateDescription("A single profile by ID"))

	var tr transport.Transport
	if cfg.HTTPAddr != "" {
		httpTr, err := transport.NewHTTPTransport(cfg.HTTPAddr)
		if err != nil {
			return err
		}
		tr = httpTr
		log.Info("serving over http", zap.String("addr", httpTr.Addr()))
	} else {
		tr = transport.StdioTransport()
		log.Info("serving over stdio")
	}
	defer func() { _ = tr.Close() }()

	srv := rpc.NewServer(reg, tr,
		rpc.WithLogger(log),
		rpc.WithServerInfo(rpc.ServerInfo{Name: cfg.ServerName, Version: cfg.ServerVersion}))

	err = srv.Run(ctx)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		log.Info("server stopped")
		return nil
	default:
		return err
	}
}
