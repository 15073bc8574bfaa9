package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/infrastructure/storage"
)

type stubPrefs struct {
	prefs domain.UserPrefs
	err   error
}

func (s stubPrefs) Load(context.Context) (domain.UserPrefs, error) { return s.prefs, s.err }
func (s stubPrefs) Save(context.Context, domain.UserPrefs) error   { return nil }

func prefsFor(path string) domain.UserPrefs {
	return domain.UserPrefs{
		PrefsFormatVersion:  domain.PrefsFormatVersion,
		GuiSettings:         domain.GuiSettings{WindowWidth: 740, WindowHeight: 600},
		AddressBookFilePath: path,
	}
}

func statuses(report domain.HealthReport) map[string]domain.HealthStatus {
	out := make(map[string]domain.HealthStatus, len(report.Checks))
	for _, c := range report.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestDoctorHealthyBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	alice, err := domain.NewPerson("Alice Pauline", "94351253", "alice@example.com", "Jurong", nil)
	require.NoError(t, err)
	require.NoError(t, storage.NewJSONFileStore(path).Save(context.Background(),
		domain.AddressBookSnapshot{Persons: []domain.Person{alice}, Pinned: []string{"Alice Pauline"}}))

	svc := &Service{PrefsStore: stubPrefs{prefs: prefsFor(path)}, OpenStorage: storage.Open}
	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, report.Failed())
	assert.Equal(t, map[string]domain.HealthStatus{
		"Preferences":    domain.HealthOK,
		"Data directory": domain.HealthOK,
		"Address book":   domain.HealthOK,
	}, statuses(report))
}

func TestDoctorMissingBookWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "book.db")
	svc := &Service{PrefsStore: stubPrefs{prefs: prefsFor(filepath.Join(t.TempDir(), "ignored.json"))}, OpenStorage: storage.Open}

	report, err := svc.Run(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Equal(t, domain.HealthWarn, statuses(report)["Address book"])
}

func TestDoctorReportsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	data := `{"persons":[
		{"name":"Alice Pauline","phone":"123","email":"a@example.com","address":"x"},
		{"name":"alice pauline","phone":"456","email":"b@example.com","address":"y"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	svc := &Service{PrefsStore: stubPrefs{prefs: prefsFor(path)}, OpenStorage: storage.Open}
	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, report.Failed())
	assert.Equal(t, domain.HealthError, statuses(report)["Integrity"])
}

func TestDoctorStopsOnBadPrefs(t *testing.T) {
	svc := &Service{PrefsStore: stubPrefs{err: errors.New("boom")}, OpenStorage: storage.Open}
	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)

	svc.PrefsStore = stubPrefs{prefs: prefsFor("book.txt")}
	report, err = svc.Run(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, report.Failed())
}
