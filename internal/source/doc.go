// Package source opens the company registry from wherever it is published.
//
// A dataset URL selects the implementation:
//
//	https://...            HTTPSource (published spreadsheets, static hosting)
//	s3://bucket/key        S3Source (AWS or S3-compatible storage)
//	postgres://...         PostgresLoader (a table, read with pgx)
//	file:///path, ./path   FileSource (offline runs and tests)
//
// CSV sources implement core.Source and are parsed by core.CSVLoader.
// Postgres rows are already tabular, so PostgresLoader implements
// core.Loader directly. Every load is a single attempt.
package source
