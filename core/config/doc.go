// Package config provides configuration management for the resource manager.
//
// It uses Viper to read environment variables (optionally from a .env file
// loaded with godotenv). Defaults come from the `default` struct tags of
// every section.
//
// # Configuration Structure
//
//   - Server: admin HTTP port and API key
//   - Storage: S3/MinIO credentials and the bucket raw assets live in
//   - Database: asset catalog connection (mysql or sqlite)
//   - Log: logging level and format
//   - Resources: default mipmap level, cleanup policy and tick intervals
//   - Archive: expansion pack path and entry cache size
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Resources.CleanupPolicy)
package config
