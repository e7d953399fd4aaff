// Package geo provides the address form lookups: the Italian
// region/province/city hierarchy with ZIP resolution, and worldwide
// country dial codes.
//
// Both datasets load once per process. The Italian dataset is fetched
// from the backend, which keeps a synced copy, and falls back to a
// bundled local file when the backend copy is missing. Lookups before
// Init return empty results rather than errors so forms degrade to
// free-text input.
//
//	italy := geo.NewItaly(geo.WithItalyRemote("http://localhost:1337"))
//	if err := italy.Init(ctx); err != nil {
//		log.Warn("geo data unavailable", logger.Error(err))
//	}
//	for _, r := range italy.Regions() {
//		fmt.Println(r)
//	}
//
// Name ordering uses Italian collation so accented names sort the way
// an Italian user expects.
package geo
