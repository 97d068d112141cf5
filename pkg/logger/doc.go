// Package logger builds *slog.Logger instances for the shop services.
//
// New applies functional options (format, level, output, static attributes)
// and wraps the resulting handler with LogHandlerDecorator, which adds
// request-scoped attributes extracted from the context of every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "shopreviews"),
//	    logger.WithContextExtractors(session.LogExtractor),
//	)
//	log.InfoContext(ctx, "review deleted", logger.ReviewID(id))
//
// Attribute helpers such as Error, UserID and ReviewID return an empty
// slog.Attr for empty input, which slog drops, so they can be passed
// unconditionally.
package logger
