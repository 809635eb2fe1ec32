// Package config provides configuration management for livery-audit.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of the
// partial configurations; nested keys map to upper-cased, underscore joined
// variables (install.roots -> INSTALL_ROOTS).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Install: installation roots and the scan cache TTL
//   - Server: HTTP server settings (port, API key)
//   - Database: optional audit history database
//   - Storage: S3/MinIO credentials for s3:// roots and missions
//   - Log: logging level, format and color
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Install.Roots)
package config
