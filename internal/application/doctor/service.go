package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	configapp "github.com/doeshing/addrbook/internal/application/config"
	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/model"
	"github.com/doeshing/addrbook/internal/ports"
)

// OpenStorage opens the address book adapter for a data path.
type OpenStorage func(path string) (ports.AddressBookStorage, error)

// Service runs diagnostics over the preferences and the address book file.
type Service struct {
	PrefsStore  ports.PrefsStore
	OpenStorage OpenStorage
}

// Run executes checks and returns a report. Checks stop at the first one
// the rest depend on.
func (s *Service) Run(ctx context.Context, dataOverride string) (domain.HealthReport, error) {
	if s.PrefsStore == nil || s.OpenStorage == nil {
		return domain.HealthReport{}, errors.New("doctor.Service dependencies not satisfied")
	}
	var checks []domain.HealthCheck

	prefs, err := s.PrefsStore.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Preferences", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, nil
	}
	if dataOverride != "" {
		prefs.AddressBookFilePath = dataOverride
	}
	if err := configapp.Validate(prefs); err != nil {
		checks = append(checks, fail("Preferences", err.Error()))
		return domain.HealthReport{Checks: checks}, nil
	}
	checks = append(checks, ok("Preferences", fmt.Sprintf("format version %s", prefs.PrefsFormatVersion)))

	checks = append(checks, dirCheck(filepath.Dir(prefs.AddressBookFilePath)))

	store, err := s.OpenStorage(prefs.AddressBookFilePath)
	if err != nil {
		checks = append(checks, fail("Address book", err.Error()))
		return domain.HealthReport{Checks: checks}, nil
	}
	if closer, isCloser := store.(interface{ Close() error }); isCloser {
		defer func() { _ = closer.Close() }()
	}

	snapshot, found, err := store.Load(ctx)
	switch {
	case err != nil:
		checks = append(checks, fail("Address book", err.Error()))
		return domain.HealthReport{Checks: checks}, nil
	case !found:
		checks = append(checks, warn("Address book", fmt.Sprintf("%s not created yet", store.Path())))
		return domain.HealthReport{Checks: checks}, nil
	}

	if _, err := model.NewAddressBookFromSnapshot(snapshot); err != nil {
		checks = append(checks, fail("Integrity", err.Error()))
	} else {
		checks = append(checks, ok("Address book", fmt.Sprintf("%d persons, %d pinned in %s",
			len(snapshot.Persons), len(snapshot.Pinned), store.Path())))
	}
	return domain.HealthReport{Checks: checks}, nil
}

func dirCheck(dir string) domain.HealthCheck {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return warn("Data directory", fmt.Sprintf("%s will be created on first save", dir))
	}
	if err != nil {
		return fail("Data directory", err.Error())
	}
	if !info.IsDir() {
		return fail("Data directory", fmt.Sprintf("%s is not a directory", dir))
	}
	probe, err := os.CreateTemp(dir, ".doctor-")
	if err != nil {
		return fail("Data directory", fmt.Sprintf("%s is not writable: %v", dir, err))
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())
	return ok("Data directory", dir)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
