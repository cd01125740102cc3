// Package runs defines the run history: the metadata recorded for every pi calculation,
// procedure generation, program run and stress test, and the services and repository
// contracts around it.
package runs
