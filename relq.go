// Package relq maps plain record types to relational tables by convention
// and compiles fluent query descriptions into parameterized SQL. Execution
// is delegated to an Executor collaborator; relq itself is pure
// transformation from metadata to SQL text.
package relq

import (
	"github.com/relq/relq/logger"
	"github.com/relq/relq/mapping"
)

// Config wires a Session.
type Config struct {
	Executor  Executor
	Dialector Dialector

	// Factory, when set, wins over the three fields below; this lets the
	// executor share the metadata cache with the compiler.
	Factory *mapping.Factory

	Conventions mapping.Conventions
	Overrides   mapping.Overrides
	// Mappings are explicit, fully resolved definitions consulted before
	// any convention build.
	Mappings mapping.Mappings

	Logger logger.Interface
}

// Session holds the collaborators shared by all queries: the metadata
// factory, the execution collaborator, the SQL dialect and the logger. A
// Session is safe for concurrent use; individual Query instances are not.
type Session struct {
	executor  Executor
	dialector Dialector
	factory   *mapping.Factory
	logger    logger.Interface
}

// Open validates the configuration and creates a Session.
func Open(config Config) (*Session, error) {
	if config.Executor == nil {
		return nil, ErrMissingExecutor
	}
	if config.Dialector == nil {
		return nil, ErrMissingDialector
	}

	factory := config.Factory
	if factory == nil {
		factory = mapping.NewFactory(config.Conventions, config.Overrides, config.Mappings)
	}
	log := config.Logger
	if log == nil {
		log = logger.Default
	}

	return &Session{
		executor:  config.Executor,
		dialector: config.Dialector,
		factory:   factory,
		logger:    log,
	}, nil
}

// Factory exposes the session's metadata cache, shared and read-only once
// entries are resolved.
func (s *Session) Factory() *mapping.Factory {
	return s.factory
}

// Logger returns the session logger.
func (s *Session) Logger() logger.Interface {
	return s.logger
}
