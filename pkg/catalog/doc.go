// Package catalog is the read/write query layer over the storefront
// backend: products, categories, professionals, customers and orders,
// plus the dashboard search state shared across admin views.
//
// Each service keeps its last successful result set, the pagination
// metadata of that result and the last error string. A failed fetch
// leaves the previous state intact so views keep rendering stale but
// valid data. Results are mapped into view models at the edge: prices
// become decimals, stock becomes an availability label, media becomes
// absolute URLs.
//
//	client, _ := apiclient.New(cfg)
//	products := catalog.NewProducts(client)
//	if err := products.Fetch(ctx); err != nil {
//		log.Error("fetch failed", logger.Error(err))
//	}
//	for _, p := range products.Items() {
//		fmt.Println(p.Name, p.Availability)
//	}
//
// Concurrent fetches on the same service are serialized by an internal
// mutex; there is no request generation tracking, so when callers race
// the last response to arrive wins.
package catalog
