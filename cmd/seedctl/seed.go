package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
	"github.com/dmitrymomot/storekit/pkg/logger"
	"github.com/dmitrymomot/storekit/pkg/slug"
)

type seededDoc struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	SKU        string `json:"sku"`
	Category   *struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"category"`
}

func (d seededDoc) ref() string {
	if d.DocumentID != "" {
		return d.DocumentID
	}
	return strconv.Itoa(d.ID)
}

// seedCategories creates every manifest category that does not exist
// yet, matched by slug. Individual failures are logged and the run
// continues.
func seedCategories(ctx context.Context, client *apiclient.Client, log *slog.Logger, cats []CategorySeed) error {
	for _, cat := range cats {
		catSlug := cat.Slug
		if catSlug == "" {
			catSlug = slug.Make(cat.Name)
		}

		exists, err := recordExists(ctx, client, "/categories", "slug", catSlug)
		if err != nil {
			log.ErrorContext(ctx, "check category", slog.String("slug", catSlug), logger.Error(err))
			continue
		}
		if exists {
			log.InfoContext(ctx, "category already exists, skipping", slog.String("slug", catSlug))
			continue
		}

		payload := map[string]any{"data": map[string]any{
			"name":        cat.Name,
			"slug":        catSlug,
			"description": cat.Description,
		}}
		if err := client.Post(ctx, "/categories", apiclient.JSON(payload), nil); err != nil {
			log.ErrorContext(ctx, "create category", slog.String("slug", catSlug), logger.Error(err))
			continue
		}
		log.InfoContext(ctx, "category created", slog.String("slug", catSlug))
	}
	return nil
}

// seedProducts creates every manifest product that does not exist yet,
// matched by SKU. Category relations resolve through a slug to id map
// loaded up front; products referencing an unknown category are created
// without the relation.
func seedProducts(ctx context.Context, client *apiclient.Client, log *slog.Logger, products []ProductSeed) error {
	catMap, err := categoryMap(ctx, client)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "categories loaded", slog.Int("count", len(catMap)))

	for _, prod := range products {
		exists, err := recordExists(ctx, client, "/products", "sku", prod.SKU)
		if err != nil {
			log.ErrorContext(ctx, "check product", slog.String("sku", prod.SKU), logger.Error(err))
			continue
		}
		if exists {
			log.InfoContext(ctx, "product already exists, skipping", slog.String("sku", prod.SKU))
			continue
		}

		price, err := prod.DecimalPrice()
		if err != nil {
			log.ErrorContext(ctx, "invalid price", slog.String("sku", prod.SKU), logger.Error(err))
			continue
		}

		prodSlug := prod.Slug
		if prodSlug == "" {
			prodSlug = slug.Make(prod.Name)
		}
		data := map[string]any{
			"name":           prod.Name,
			"slug":           prodSlug,
			"subtitle":       prod.Subtitle,
			"sku":            prod.SKU,
			"price":          price,
			"stock":          prod.Stock,
			"description":    prod.Description,
			"availability":   availabilityStatus(prod.Stock),
			"technical_data": prod.TechnicalData,
		}
		if catID, ok := catMap[prod.CategorySlug]; ok {
			data["category"] = catID
		} else if prod.CategorySlug != "" {
			log.WarnContext(ctx, "category not found, creating without relation",
				slog.String("sku", prod.SKU), slog.String("category", prod.CategorySlug))
		}

		if err := client.Post(ctx, "/products", apiclient.JSON(map[string]any{"data": data}), nil); err != nil {
			log.ErrorContext(ctx, "create product", slog.String("sku", prod.SKU), logger.Error(err))
			continue
		}
		log.InfoContext(ctx, "product created", slog.String("sku", prod.SKU))
	}
	return nil
}

// clearProducts deletes every product, fetched in one large page.
func clearProducts(ctx context.Context, client *apiclient.Client, log *slog.Logger) error {
	var env apiclient.Envelope[[]seededDoc]
	query := apiclient.NewParams().Paginate(1, 100).Values()
	if err := client.Get(ctx, "/products", query, &env); err != nil {
		return err
	}
	log.InfoContext(ctx, "products to delete", slog.Int("count", len(env.Data)))

	for _, p := range env.Data {
		if err := client.Delete(ctx, "/products/"+p.ref()); err != nil {
			log.ErrorContext(ctx, "delete product", slog.String("name", p.Name), logger.Error(err))
			continue
		}
		log.InfoContext(ctx, "product deleted", slog.String("name", p.Name))
	}
	return nil
}

func categoryMap(ctx context.Context, client *apiclient.Client) (map[string]string, error) {
	var env apiclient.Envelope[[]seededDoc]
	if err := client.Get(ctx, "/categories", nil, &env); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(env.Data))
	for _, c := range env.Data {
		out[c.Slug] = c.ref()
	}
	return out, nil
}

func recordExists(ctx context.Context, client *apiclient.Client, path, field, value string) (bool, error) {
	var env apiclient.Envelope[[]seededDoc]
	query := apiclient.NewParams().Filter(field, "$eq", value).Values()
	if err := client.Get(ctx, path, query, &env); err != nil {
		return false, err
	}
	return len(env.Data) > 0, nil
}

func availabilityStatus(stock int) string {
	if stock > 0 {
		return "Disponibile"
	}
	return "Esaurito"
}
