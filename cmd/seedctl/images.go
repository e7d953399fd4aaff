package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/logger"
)

// linkImages uploads the mapped image files and attaches them to their
// category (heroImage) or product (image) records, matched by slug.
// Missing files or records are logged and skipped.
func linkImages(ctx context.Context, client *apiclient.Client, log *slog.Logger, mappings ImageMappings, dir string) error {
	for _, link := range mappings.Categories {
		attachImage(ctx, client, log, dir, link, "/categories", "heroImage")
	}
	for _, link := range mappings.Products {
		attachImage(ctx, client, log, dir, link, "/products", "image")
	}
	return nil
}

func attachImage(ctx context.Context, client *apiclient.Client, log *slog.Logger, dir string, link ImageLink, path, attr string) {
	log = log.With(slog.String("slug", link.Slug))

	var env apiclient.Envelope[[]seededDoc]
	query := apiclient.NewParams().Filter("slug", "$eq", link.Slug).Values()
	if err := client.Get(ctx, path, query, &env); err != nil {
		log.ErrorContext(ctx, "find record", logger.Error(err))
		return
	}
	if len(env.Data) == 0 {
		log.WarnContext(ctx, "record not found, skipping")
		return
	}
	record := env.Data[0]

	f, err := os.Open(filepath.Join(dir, link.Image))
	if err != nil {
		log.ErrorContext(ctx, "open image file", logger.Error(err))
		return
	}
	defer f.Close()

	stored, err := client.Upload(ctx, apiclient.FormFile{Name: link.Image, Content: f})
	if err != nil {
		log.ErrorContext(ctx, "upload image", logger.Error(err))
		return
	}
	if len(stored) == 0 {
		log.ErrorContext(ctx, "upload returned no files")
		return
	}

	payload := map[string]any{"data": map[string]any{attr: stored[0].ID}}
	if err := client.Put(ctx, path+"/"+record.ref(), apiclient.JSON(payload), nil); err != nil {
		log.ErrorContext(ctx, "attach image", logger.Error(err))
		return
	}
	log.InfoContext(ctx, "image attached", slog.Int("file_id", stored[0].ID))
}
