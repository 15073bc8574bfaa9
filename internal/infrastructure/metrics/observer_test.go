package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/model"
)

func TestObserverCountsEvents(t *testing.T) {
	manager, err := model.NewManager(domain.AddressBookSnapshot{}, domain.UserPrefs{})
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	obs, err := NewObserver(reg, manager)
	require.NoError(t, err)
	manager.Subscribe(obs)

	alice, err := domain.NewPerson("Alice", "123", "alice@example.com", "somewhere", nil)
	require.NoError(t, err)
	require.NoError(t, manager.AddPerson(alice))
	manager.Commit()
	require.NoError(t, manager.Undo())
	manager.UpdateFilter(func(domain.Person) bool { return false })

	assert.Equal(t, 1.0, testutil.ToFloat64(obs.events.WithLabelValues(string(model.ChangePersons))))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.events.WithLabelValues(string(model.ChangeCommit))))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.events.WithLabelValues(string(model.ChangeUndo))))
	assert.Equal(t, 0.0, testutil.ToFloat64(obs.persons))
	assert.Equal(t, 0.0, testutil.ToFloat64(obs.visible))
	assert.Equal(t, 2.0, testutil.ToFloat64(obs.states))

	var out bytes.Buffer
	require.NoError(t, obs.WriteSummary(&out))
	assert.Contains(t, out.String(), `addrbook_model_events_total{kind="undo"} 1`)
	assert.Contains(t, out.String(), "addrbook_checkpoints 2")
}

func TestNewObserverRejectsDoubleRegistration(t *testing.T) {
	manager, err := model.NewManager(domain.AddressBookSnapshot{}, domain.UserPrefs{})
	require.NoError(t, err)
	reg := prometheus.NewRegistry()

	_, err = NewObserver(reg, manager)
	require.NoError(t, err)
	_, err = NewObserver(reg, manager)
	assert.Error(t, err)
}
