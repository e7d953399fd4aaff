// Package apiclient is the single chokepoint for HTTP calls to the headless
// commerce backend. It injects the bearer token, encodes JSON and multipart
// request bodies, speaks the backend's {data, meta} envelope dialect, and
// normalises every non-success response into one error type (*APIError) so
// higher-level stores have a single error contract to handle.
//
// Request bodies are an explicit tagged union: callers pass either
// apiclient.JSON(v) or an *apiclient.Multipart, never an inferred shape.
//
//	client := apiclient.New(cfg, apiclient.WithTokenSource(auth.TokenSource()))
//
//	var env apiclient.Envelope[[]productRecord]
//	err := client.Get(ctx, "/products",
//	    apiclient.NewParams().Populate("*").Paginate(1, 25).Values(), &env)
package apiclient
