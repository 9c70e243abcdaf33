package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/seitarof/struct2json/internal/cli"
	"github.com/seitarof/struct2json/internal/generator"
	"github.com/seitarof/struct2json/internal/parser"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	f, err := generator.FormatterFor(cfg.Format)
	if err != nil {
		logger.Fatal("invalid format", zap.Error(err))
	}
	w := generator.NewFileWriter(os.Stdout)
	g := generator.New(f, w)
	p := parser.New(parser.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := cli.NewRunner(cli.NewSchemaLoader(p), g, logger)
	if err := runner.Run(ctx, cfg); err != nil {
		logger.Fatal("struct2json failed", zap.Error(err))
	}
}

// newLogger writes to stderr so that skeletons printed to stdout stay clean.
func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableStacktrace = true
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return zcfg.Build()
}
