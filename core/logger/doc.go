// Package logger builds the application's zap logger.
//
// The debug level selects zap's development config (ISO8601 timestamps,
// stack traces on warnings); any other level uses the production config.
// Format selects json or coloured console output.
//
// WithRayID attaches the request's ray ID, set by the rayid middleware, so
// every line logged for one request can be correlated.
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRayID(log, c)
//	l.Error("Rebuild failed", zap.Error(err))
package logger
