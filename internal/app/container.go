package app

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	configapp "github.com/doeshing/addrbook/internal/application/config"
	"github.com/doeshing/addrbook/internal/application/session"
	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/infrastructure/config"
	"github.com/doeshing/addrbook/internal/infrastructure/metrics"
	"github.com/doeshing/addrbook/internal/infrastructure/storage"
	"github.com/doeshing/addrbook/internal/model"
	"github.com/doeshing/addrbook/internal/pkg/logger"
	"github.com/doeshing/addrbook/internal/ports"
)

// Options tune how the container is built.
type Options struct {
	Verbose bool
	// DataPath overrides the address book path from the preferences for
	// this run only.
	DataPath string
	// LogOutput receives log lines; nil uses the standard logger.
	LogOutput io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Prefs       domain.UserPrefs
	PrefsLoader *config.FileLoader
	Storage     ports.AddressBookStorage
	Model       *model.Manager
	Session     *session.Service
	Metrics     *metrics.Observer
	Logger      ports.Logger

	unsubscribe func()
}

// BuildContainer constructs the dependency graph and loads the address book.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	var log ports.Logger = logger.NewStd(opts.Verbose)
	if opts.LogOutput != nil {
		log = logger.NewWriter(opts.LogOutput, opts.Verbose)
	}

	prefsLoader := config.NewFileLoader("")
	prefs, err := prefsLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if opts.DataPath != "" {
		prefs.AddressBookFilePath = opts.DataPath
	}
	if err := configapp.Validate(prefs); err != nil {
		return nil, fmt.Errorf("invalid preferences %s: %w", prefsLoader.Path(), err)
	}

	store, err := storage.Open(prefs.AddressBookFilePath)
	if err != nil {
		return nil, err
	}
	snapshot, found, err := store.Load(ctx)
	if err != nil {
		closeStore(store)
		return nil, err
	}
	if !found {
		log.Info("no address book found, starting empty", map[string]interface{}{"path": store.Path()})
	}

	manager, err := model.NewManager(snapshot, prefs, model.WithLogger(log))
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("load %s: %w", store.Path(), err)
	}

	observer, err := metrics.NewObserver(prometheus.NewRegistry(), manager)
	if err != nil {
		closeStore(store)
		return nil, err
	}

	return &Container{
		Prefs:       prefs,
		PrefsLoader: prefsLoader,
		Storage:     store,
		Model:       manager,
		Session:     &session.Service{Model: manager, Storage: store, Logger: log},
		Metrics:     observer,
		Logger:      log,
		unsubscribe: manager.Subscribe(observer),
	}, nil
}

// Close releases the storage adapter.
func (c *Container) Close() error {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if closer, ok := c.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func closeStore(store ports.AddressBookStorage) {
	if closer, ok := store.(io.Closer); ok {
		_ = closer.Close()
	}
}
