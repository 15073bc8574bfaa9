// Package metrics exports model activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/doeshing/addrbook/internal/model"
)

// Observer counts model events and tracks the size of the address book and
// the checkpoint history. Register it with model.Manager.Subscribe.
type Observer struct {
	manager  *model.Manager
	events   *prometheus.CounterVec
	persons  prometheus.Gauge
	visible  prometheus.Gauge
	states   prometheus.Gauge
	registry prometheus.Gatherer
}

// NewObserver registers the collectors on reg.
func NewObserver(reg *prometheus.Registry, manager *model.Manager) (*Observer, error) {
	o := &Observer{
		manager: manager,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "addrbook",
			Name:      "model_events_total",
			Help:      "Successful model mutations by kind.",
		}, []string{"kind"}),
		persons: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "addrbook",
			Name:      "persons",
			Help:      "Persons in the address book.",
		}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "addrbook",
			Name:      "visible_persons",
			Help:      "Persons passing the active filter.",
		}),
		states: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "addrbook",
			Name:      "checkpoints",
			Help:      "Checkpoints held for undo and redo.",
		}),
		registry: reg,
	}
	for _, c := range []prometheus.Collector{o.events, o.persons, o.visible, o.states} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	o.refresh()
	return o, nil
}

// ModelChanged implements model.Observer.
func (o *Observer) ModelChanged(e model.Event) {
	o.events.WithLabelValues(string(e.Kind)).Inc()
	o.refresh()
}

func (o *Observer) refresh() {
	o.persons.Set(float64(len(o.manager.Snapshot().Persons)))
	o.visible.Set(float64(o.manager.FilteredPersons().Len()))
	states, _ := o.manager.StateCount()
	o.states.Set(float64(states))
}

// WriteSummary prints every addrbook metric as "name{labels} value" lines.
func (o *Observer) WriteSummary(w io.Writer) error {
	families, err := o.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			if labels != "" {
				labels = "{" + labels + "}"
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			}
			lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), labels, value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
