package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/omeeai/appshell/modules/shell"
	"github.com/omeeai/appshell/pkg/apiclient"
	"github.com/omeeai/appshell/pkg/catalog"
	"github.com/omeeai/appshell/pkg/config"
	"github.com/omeeai/appshell/pkg/guard"
	"github.com/omeeai/appshell/pkg/httpserver"
	"github.com/omeeai/appshell/pkg/logger"
	"github.com/omeeai/appshell/pkg/payment"
	"github.com/omeeai/appshell/pkg/session"
)

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// CatalogFile switches the price catalog to a local YAML file, useful
	// when no pricing backend is reachable.
	CatalogFile string `env:"CATALOG_FILE"`
}

func main() {
	var (
		appCfg    appConfig
		apiCfg    apiclient.Config
		stripeCfg payment.StripeConfig
		srvCfg    httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&apiCfg)
	config.MustLoad(&stripeCfg)
	config.MustLoad(&srvCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Env, "appshell"))
	logger.SetAsDefault(log)

	api, err := apiclient.New(apiCfg)
	if err != nil {
		log.Error("api client init failed", slog.Any("error", err))
		os.Exit(1)
	}

	var source session.CatalogSource = api
	if appCfg.CatalogFile != "" {
		source = catalog.NewFileSource(appCfg.CatalogFile)
	}

	store := session.New(api, source, session.WithLogger(log))
	routeGuard := guard.New(guard.WithLogger(log))

	tokenizer, err := payment.NewStripeTokenizer(stripeCfg)
	if err != nil {
		log.Error("stripe tokenizer init failed", slog.Any("error", err))
		os.Exit(1)
	}

	orchestrator := payment.New(store, tokenizer, api, payment.WithLogger(log))
	module := shell.New(store, routeGuard, orchestrator, api, shell.WithLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Trace session state transitions for diagnostics.
	watch := store.Watch()
	go func() {
		for snap := range watch {
			log.Debug("session state changed",
				slog.String("state", string(guard.StateOf(snap))),
				slog.Bool("catalog_loaded", snap.Catalog != nil),
			)
		}
	}()

	// Exactly one bootstrap per application load; a failure resolves to the
	// anonymous state rather than aborting startup.
	go func() {
		if err := store.Bootstrap(ctx); err != nil {
			log.Info("bootstrap resolved without session", slog.Any("error", err))
		}
	}()

	srv := httpserver.New(srvCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, module.Handler()); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}
