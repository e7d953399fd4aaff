package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrymomot/storekit/pkg/apiclient"
)

// inspect prints the seeded categories and products, with each
// product's resolved category, for a quick data sanity check.
func inspect(ctx context.Context, client *apiclient.Client, w io.Writer) error {
	var cats apiclient.Envelope[[]seededDoc]
	if err := client.Get(ctx, "/categories", nil, &cats); err != nil {
		return err
	}
	fmt.Fprintln(w, "--- Categories ---")
	for _, c := range cats.Data {
		fmt.Fprintf(w, "%s: %s (%s)\n", c.ref(), c.Name, c.Slug)
	}

	var prods apiclient.Envelope[[]seededDoc]
	query := apiclient.NewParams().Populate("*").Paginate(1, 100).Values()
	if err := client.Get(ctx, "/products", query, &prods); err != nil {
		return err
	}
	fmt.Fprintln(w, "--- Products ---")
	for _, p := range prods.Data {
		catName := "NULL"
		if p.Category != nil {
			catName = fmt.Sprintf("%s (%s)", p.Category.Name, p.Category.Slug)
		}
		fmt.Fprintf(w, "%s: %s -> %s\n", p.ref(), p.Name, catName)
	}
	return nil
}
