// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The in-memory model in package model is the application core. Everything
// that touches the outside world (files, databases, the terminal, the
// logging backend) reaches it through the interfaces declared here, and the
// concrete adapters live under internal/infrastructure.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., AddressBookStorage, PrefsStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: the model depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/addrbook/internal/domain"
)

// AddressBookStorage loads and saves a full snapshot of the address book.
// Load reports found=false when nothing has been saved yet.
type AddressBookStorage interface {
	Load(ctx context.Context) (snapshot domain.AddressBookSnapshot, found bool, err error)
	Save(ctx context.Context, snapshot domain.AddressBookSnapshot) error
	Path() string
}

// PrefsStore loads and saves user preferences.
// Implementations typically read from ~/.addrbook/preferences.yaml.
type PrefsStore interface {
	Load(context.Context) (domain.UserPrefs, error)
	Save(context.Context, domain.UserPrefs) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
