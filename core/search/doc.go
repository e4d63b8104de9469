// Package search implements verse search and filtering over a bible.Corpus.
//
// A search is described by Params: scope tokens choosing which books and
// chapters to visit, and text tokens deciding which verses match. Search
// compiles the tokens into a Plan, scans the corpus in canonical order and
// either lists matching verses or reports per-chapter counts.
//
// # Scope tokens
//
//   - "Ge", "Genesis": one book
//   - "Ps 119": one chapter; pulls its book into scope
//   - "Mt..Jn": an inclusive book range
//   - "OT", "NT": books 1..39 and 40..66
//
// A leading "!" turns any scope token into an exclusion. Tokens are folded
// left to right, so later tokens override earlier ones for the same book.
//
// # Text tokens
//
// Match tokens are literal, case-sensitive substrings unless delimited as
// "/regex/" or "/regex/i". Word tokens match whole words; an all-lowercase
// word matches case-insensitively. A leading "+" makes a token required and
// a leading "!" makes it an exclusion; otherwise any one match suffices.
package search
