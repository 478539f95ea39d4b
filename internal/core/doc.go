// Package core provides the business logic for company search.
//
// This package holds the dataset model, the CSV loader and the search
// filter, independent of any UI or transport layer. It is used by the web
// handlers, the terminal UI and the CLI without modification.
//
// # Architecture
//
// A search is a single synchronous load-then-filter sequence:
//
//  1. [Service.Search] receives the raw query from the caller
//  2. A blank query returns [StatusNoQuery] without touching the source
//  3. The configured [Loader] fetches and parses a fresh [Dataset]
//  4. [Search] keeps the records whose name column contains the query
//
// Nothing is cached between calls. Every search sees the dataset as it is
// at the source at that moment, and the dataset is discarded afterwards.
//
// # Loading
//
// [CSVLoader] opens a [Source] and parses the payload with [ParseDataset].
// Sources live in the source package (HTTP, local file, S3). Loaders that do
// not produce CSV, such as the Postgres loader, implement [Loader] directly.
//
// # Matching
//
// The query is trimmed and uppercased by [NormalizeQuery]. [Search] then
// compares it against each record's name field using Unicode case folding on
// both sides, so mixed-case source data still matches. The data side is
// never trimmed or rewritten.
//
// # Error Handling
//
// Load failures are either a [*FetchError] (source unreachable or non-success
// status) or a [*ParseError] (payload is not tabular text with a header).
// Neither is retried. [MapError] turns them into user-facing messages with a
// support code:
//
//   - SRC001-SRC004: Source errors (unreachable, status, timeout, not found)
//   - CSV001-CSV004: Payload errors (malformed, empty, ragged rows, too large)
//   - QRY001: Search cancelled
//   - RATE001: Rate limited
//
// StatusNoQuery and StatusZeroMatches are normal results, not errors.
package core
