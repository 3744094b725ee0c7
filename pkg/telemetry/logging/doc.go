// Package logging builds the process logger.
//
// Loggers are plain *slog.Logger values. New selects the handler from the
// configured format ("json" or "text") and level, and wraps it so that
// request ids, check ids and the active trace and span ids stored in the
// context are added to every record logged with a *Context method:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	ctx = logging.WithRequestID(ctx, id)
//	logger.InfoContext(ctx, "check completed", "msg", res.Action.Msg)
package logging
