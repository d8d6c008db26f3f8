package store

import "errors"

// ErrCredentialNotFound is returned by [CredentialRepository.Load] when no
// session has been cached yet (or it was cleared on logout).
var ErrCredentialNotFound = errors.New("credential was not found")

// Low-level database operation errors. Repository methods wrap these so
// callers can tell a broken query from a missing row.
var (
	// ErrBuildingSQLQuery is returned when the query builder rejects its input.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan credential row")

	// ErrSealing is returned when a token cannot be sealed or opened.
	ErrSealing = errors.New("failed to seal credential")
)
