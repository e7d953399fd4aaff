// Package logger is a thin factory around log/slog used by every storekit
// component. It standardises output format and level selection and ships a
// handful of attribute constructors for the identifiers that show up across
// the toolkit (products, orders, storage scopes).
//
// Components accept a *slog.Logger through their options and default to a
// discard logger, so logging stays opt-in:
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "storefront")),
//	)
//	cart := cart.New(cart.WithLogger(log))
package logger
