package models

import (
	"errors"
)

var (
	ErrNoRecord              = errors.New("models: no matching record found")
	ErrSearchUnavailable     = errors.New("models: search temporarily unavailable")
	ErrInvalidSortKey        = errors.New("models: invalid sort key")
	ErrInvalidSortOrder      = errors.New("models: invalid sort order")
	ErrUnsupportedSearchType = errors.New("models: unsupported search type")
)
