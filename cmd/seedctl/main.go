// Command seedctl loads reference data into the storefront backend:
// categories, products and their images, driven by a YAML manifest.
// It authenticates with an API token and skips records that already
// exist, so reruns are safe.
//
// Usage:
//
//	seedctl seed-categories -manifest seed.yaml
//	seedctl seed-products   -manifest seed.yaml
//	seedctl link-images     -manifest seed.yaml -images ./public/img
//	seedctl clear-products
//	seedctl inspect
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/config"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

type seedConfig struct {
	API   apiclient.Config
	Token string `env:"STORE_API_TOKEN,required"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	manifestPath := fs.String("manifest", "seed.yaml", "path to the seed manifest")
	imageDir := fs.String("images", "public/img", "directory holding image files")
	verbose := fs.Bool("v", false, "debug logging")
	_ = fs.Parse(os.Args[2:])

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.New(logger.WithFormat(logger.FormatText), logger.WithLevel(level))

	var cfg seedConfig
	if err := config.Load(&cfg); err != nil {
		log.Error("load configuration", logger.Error(err))
		os.Exit(1)
	}

	client, err := apiclient.New(cfg.API, apiclient.WithTokenSource(func(context.Context) string {
		return cfg.Token
	}))
	if err != nil {
		log.Error("create api client", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() error {
		switch os.Args[1] {
		case "seed-categories":
			m, err := loadManifest(*manifestPath)
			if err != nil {
				return err
			}
			return seedCategories(ctx, client, log, m.Categories)
		case "seed-products":
			m, err := loadManifest(*manifestPath)
			if err != nil {
				return err
			}
			return seedProducts(ctx, client, log, m.Products)
		case "link-images":
			m, err := loadManifest(*manifestPath)
			if err != nil {
				return err
			}
			return linkImages(ctx, client, log, m.Images, *imageDir)
		case "clear-products":
			return clearProducts(ctx, client, log)
		case "inspect":
			return inspect(ctx, client, os.Stdout)
		default:
			usage()
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	if err := run(); err != nil {
		log.Error("command failed", logger.Error(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: seedctl <command> [flags]

commands:
  seed-categories  create missing categories from the manifest
  seed-products    create missing products from the manifest
  link-images      upload and attach images to seeded records
  clear-products   delete every product
  inspect          print categories and products`)
}
