package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"promptman/assistant"
	"promptman/config"
	"promptman/server"
)

func main() {
	addr := flag.String("addr", "", "http listen address (overrides SERVER_ADDR)")
	mock := flag.Bool("mock", false, "use the mock backend for structure suggestion")
	verbose := flag.Bool("v", false, "enable development logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg := config.FromEnv()

	var backend assistant.Backend
	if *mock {
		backend = assistant.NewMockBackend()
	} else {
		backend, err = assistant.NewBackend(cfg, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if backend == nil {
		log.Infow("生成バックエンドなしで起動します（構成は常に静的フォールバック）")
	} else {
		log.Infow("生成バックエンドを使用します", "provider", backend.ProviderName())
	}

	rules := assistant.NewRuleStore()
	catalog := assistant.NewCatalog()
	resolver := assistant.NewResolver(rules, catalog, backend, cfg.Timeout, log)
	compiler := assistant.NewCompiler(rules)
	workflow := assistant.NewWorkflow(rules, catalog, resolver, compiler, assistant.NewMemoryRepo(), log)

	srv, err := server.New(workflow, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := cfg.ServerAddr
	if *addr != "" {
		listen = *addr
	}
	log.Infow("starting web server", "addr", listen)
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
