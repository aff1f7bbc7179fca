package repository

import "errors"

var (
	// ErrStateChanged means a guarded update matched no row because the
	// record was no longer in the expected state.
	ErrStateChanged = errors.New("record is no longer in the expected state")
	// ErrHasDependents means a delete was refused because other rows still
	// reference the record.
	ErrHasDependents = errors.New("record is still referenced")
	// ErrReferenceMissing means a referenced row does not exist.
	ErrReferenceMissing = errors.New("referenced record does not exist")
)
