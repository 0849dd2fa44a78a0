package relq

import (
	"errors"

	"github.com/relq/relq/logger"
)

var (
	// ErrRecordNotFound is returned by First and Single on an empty result;
	// the *OrDefault variants return the zero value instead.
	ErrRecordNotFound = logger.ErrRecordNotFound
	// ErrMultipleRecords is returned by Single and SingleOrDefault when
	// more than one row matches.
	ErrMultipleRecords = errors.New("more than one record found")
	// ErrInvalidPage page or page size below 1
	ErrInvalidPage = errors.New("page and page size must be positive")
	// ErrMissingExecutor session has no execution collaborator
	ErrMissingExecutor = errors.New("executor required")
	// ErrMissingDialector session has no dialect formatter
	ErrMissingDialector = errors.New("dialector required")
)
