// Package database opens the optional SQL database and inspects its schema.
//
// Connect wraps GORM for the two supported drivers: mysql for shared
// deployments and sqlite for a single local file (or ":memory:" in tests).
// The catalog itself never needs a database; the blacklist store uses it
// when one is configured.
//
// GetTableColumns and MissingColumns read a table's column list so that
// stores can verify their schema before use.
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Database unavailable", zap.Error(err))
//	}
package database
