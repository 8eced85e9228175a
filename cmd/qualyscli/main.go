package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"gitlab.apk-group.net/siem/backend/qualys-client/app"
	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: qualyscli [--config path] <command> [flags]\n\ncommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintf(os.Stderr, "\nglobal flags:\n")
	pflag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := pflag.String("config", "config.yaml", "client configuration file")
	pflag.Usage = usage
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if v := os.Getenv("CONFIG_PATH"); len(v) > 0 {
		*configPath = v
	}
	if pflag.NArg() == 0 {
		usage()
		return 2
	}

	cmd, ok := lookupCommand(pflag.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", pflag.Arg(0))
		usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := &env{out: os.Stdout}
	if cmd.needsConfig {
		cfg, err := config.ReadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
			return 1
		}
		// stdout carries command output
		if cfg.Logger.Output != string(logger.OutputFile) {
			cfg.Logger.Output = string(logger.OutputStderr)
		}
		if err := logger.InitGlobalLogger(cfg.Logger); err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
			return 1
		}

		container, err := app.NewApp(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize client: %v\n", err)
			return 1
		}
		defer container.Close()

		e.cfg = cfg
		e.svc = container.QualysService(ctx)
	}

	if err := cmd.run(ctx, e, pflag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}
