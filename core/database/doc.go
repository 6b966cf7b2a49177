// Package database opens the asset catalog database through GORM.
//
// Connect supports MySQL for deployments and SQLite for local runs and
// tests. The schema inspector reads a table's columns so the integrity
// checks can verify the catalog table before the service starts serving.
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "assets", []string{"raw_id", "object_key"})
package database
