// Package storekit is a Go client toolkit for the storefront backend:
// cart state with undo, authenticated sessions persisted across
// restarts, the catalog query layer and address form geo lookups,
// wired together behind one explicit App value.
//
// Everything hangs off an App; there is no package-level state. Two
// Apps in the same process are fully independent, which keeps tests
// hermetic and lets a server host one App per tenant.
//
//	var cfg storekit.Config
//	config.MustLoad(&cfg)
//
//	app, err := storekit.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//
//	if err := app.Init(ctx); err != nil {
//		app.Logger.Warn("partial startup", logger.Error(err))
//	}
//
//	app.Cart.AddItem(item, 2)
//	if app.Auth.Login(ctx, email, password, true) {
//		fmt.Println("ciao", app.Auth.User().Name)
//	}
//
// Init failures are non-fatal: a missing cart snapshot, an expired
// session or unreachable geo data each degrade their own feature and
// leave the rest of the App usable.
package storekit
