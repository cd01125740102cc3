// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to store the run history on SQLite or
// PostgreSQL. Domain entities are validated before they are written and
// converted to separate GORM models.
package persistence
