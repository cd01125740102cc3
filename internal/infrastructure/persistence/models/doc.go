// Package models contains the GORM row types of the run history.
// They map to and from the runs domain entities and never leave the persistence layer.
package models
