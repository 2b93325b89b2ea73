// Package config loads the application configuration.
//
// Values come from the environment, optionally seeded from a .env file in
// the given directory. Keys map to environment variables by upper-casing
// and replacing dots with underscores: catalog.data_dir is read from
// CATALOG_DATA_DIR. Defaults come from the `default` struct tags of each
// section.
//
// # Sections
//
//   - Server: listen port, API key, shutdown bound
//   - Log: level and format
//   - Database: optional blacklist persistence (mysql or sqlite)
//   - Storage: MinIO/S3 bucket holding plugins
//   - Catalog: plugin source, load order and scan limits
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Catalog.DataDir)
package config
