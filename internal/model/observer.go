package model

// ChangeKind names what a mutating call changed.
type ChangeKind string

const (
	ChangePersons ChangeKind = "persons"
	ChangeFilter  ChangeKind = "filter"
	ChangeSort    ChangeKind = "sort"
	ChangeHistory ChangeKind = "history"
	ChangeCommit  ChangeKind = "commit"
	ChangeUndo    ChangeKind = "undo"
	ChangeRedo    ChangeKind = "redo"
	ChangeReset   ChangeKind = "reset"
)

// Event is delivered to observers after a successful mutating call.
type Event struct {
	Kind ChangeKind
}

// Observer is notified synchronously, on the caller's goroutine.
type Observer interface {
	ModelChanged(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) ModelChanged(e Event) { f(e) }

type subscription struct {
	id       int
	observer Observer
}

// observerHub keeps observers in subscription order.
type observerHub struct {
	nextID int
	subs   []subscription
}

func (h *observerHub) subscribe(o Observer) func() {
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, observer: o})
	return func() {
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

func (h *observerHub) notify(kind ChangeKind) {
	// observers may unsubscribe while being notified
	subs := h.subs
	for _, s := range subs {
		s.observer.ModelChanged(Event{Kind: kind})
	}
}
