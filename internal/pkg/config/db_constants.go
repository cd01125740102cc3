package config

// Supported database types for the run history store
const (
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
)
