package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/model"
	"github.com/doeshing/addrbook/internal/ports"
)

// ErrInvalidIndex is returned when an index does not point into the displayed list.
var ErrInvalidIndex = errors.New("the person index provided is invalid")

// Result is the feedback shown to the user after a command.
type Result struct {
	Feedback string
}

// Service executes user commands against the model. Each command that
// changes the address book or its filter ends with exactly one commit, and
// the address book is saved after every change to its content.
type Service struct {
	Model   *model.Manager
	Storage ports.AddressBookStorage
	Logger  ports.Logger
}

func (s *Service) ready() error {
	if s.Model == nil || s.Storage == nil || s.Logger == nil {
		return errors.New("session.Service dependencies not satisfied")
	}
	return nil
}

// RecordInput adds a raw command line to the command history.
func (s *Service) RecordInput(input string) {
	if s.Model == nil || strings.TrimSpace(input) == "" {
		return
	}
	s.Model.AddPastCommandInput(input)
}

// Add adds a new person.
func (s *Service) Add(ctx context.Context, p domain.Person) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if s.Model.HasPerson(p) {
		return Result{}, fmt.Errorf("add %s: %w", p.Name(), domain.ErrDuplicatePerson)
	}
	if err := s.Model.AddPerson(p); err != nil {
		return Result{}, err
	}
	return s.commitAndSave(ctx, "New person added: "+p.String())
}

// Delete removes the person at a 1-based index of the displayed list.
func (s *Service) Delete(ctx context.Context, index int) (Result, error) {
	p, err := s.personAt(index)
	if err != nil {
		return Result{}, err
	}
	if err := s.Model.DeletePerson(p); err != nil {
		return Result{}, err
	}
	return s.commitAndSave(ctx, "Deleted Person: "+p.String())
}

// Edit replaces fields of the person at a 1-based index.
func (s *Service) Edit(ctx context.Context, index int, edit domain.PersonEdit) (Result, error) {
	target, err := s.personAt(index)
	if err != nil {
		return Result{}, err
	}
	edited, err := domain.EditPerson(target, edit)
	if err != nil {
		return Result{}, err
	}
	if target.Equal(edited) {
		return Result{}, errors.New("edit leaves the person unchanged")
	}
	if err := s.Model.SetPerson(target, edited); err != nil {
		return Result{}, err
	}
	return s.commitAndSave(ctx, "Edited Person: "+edited.String())
}

// Pin moves the person at a 1-based index into the pinned group.
func (s *Service) Pin(ctx context.Context, index int) (Result, error) {
	p, err := s.personAt(index)
	if err != nil {
		return Result{}, err
	}
	if s.Model.FilteredPersons().IsPinned(p) {
		return Result{}, fmt.Errorf("%s is already pinned", p.Name())
	}
	if err := s.Model.PinPerson(p); err != nil {
		return Result{}, err
	}
	return s.commitAndSave(ctx, "Pinned Person: "+p.Name())
}

// Unpin moves the person at a 1-based index out of the pinned group.
func (s *Service) Unpin(ctx context.Context, index int) (Result, error) {
	p, err := s.personAt(index)
	if err != nil {
		return Result{}, err
	}
	if !s.Model.FilteredPersons().IsPinned(p) {
		return Result{}, fmt.Errorf("%s is not pinned", p.Name())
	}
	if err := s.Model.UnpinPerson(p); err != nil {
		return Result{}, err
	}
	return s.commitAndSave(ctx, "Unpinned Person: "+p.Name())
}

// Clear empties the address book.
func (s *Service) Clear(ctx context.Context) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if err := s.Model.ResetAddressBookData(domain.AddressBookSnapshot{}); err != nil {
		return Result{}, err
	}
	return s.commitAndSave(ctx, "Address book has been cleared!")
}

// Find shows persons whose name contains any keyword as a whole word, or
// who carry a tag equal to a keyword. Matching ignores case.
func (s *Service) Find(keywords []string) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if len(keywords) == 0 {
		return Result{}, errors.New("find needs at least one keyword")
	}
	s.Model.UpdateFilter(NameOrTagContains(keywords))
	s.Model.Commit()
	return Result{Feedback: fmt.Sprintf("%d persons listed!", s.Model.FilteredPersons().Len())}, nil
}

// List clears the filter.
func (s *Service) List() (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	s.Model.UpdateFilter(model.ShowAll)
	s.Model.Commit()
	return Result{Feedback: "Listed all persons"}, nil
}

// Sort orders the displayed list by field prefixes. Sorting is a view
// setting and does not create a checkpoint.
func (s *Service) Sort(prefixes []string) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if err := s.Model.UpdateSort(prefixes...); err != nil {
		return Result{}, err
	}
	if len(prefixes) == 0 {
		return Result{Feedback: "Sorted persons by insertion order"}, nil
	}
	return Result{Feedback: "Sorted persons by " + strings.Join(prefixes, ", ")}, nil
}

// Undo restores the previous checkpoint.
func (s *Service) Undo(ctx context.Context) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if err := s.Model.Undo(); err != nil {
		return Result{}, fmt.Errorf("nothing to undo: %w", err)
	}
	return s.save(ctx, "Undo success!")
}

// Redo restores the checkpoint that was last undone.
func (s *Service) Redo(ctx context.Context) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if err := s.Model.Redo(); err != nil {
		return Result{}, fmt.Errorf("nothing to redo: %w", err)
	}
	return s.save(ctx, "Redo success!")
}

// History returns past command inputs, most recent first.
func (s *Service) History() []string {
	if s.Model == nil {
		return nil
	}
	return s.Model.CommandHistory()
}

func (s *Service) personAt(index int) (domain.Person, error) {
	if err := s.ready(); err != nil {
		return domain.Person{}, err
	}
	p, ok := s.Model.FilteredPersons().At(index - 1)
	if !ok {
		return domain.Person{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return p, nil
}

func (s *Service) commitAndSave(ctx context.Context, feedback string) (Result, error) {
	s.Model.Commit()
	return s.save(ctx, feedback)
}

func (s *Service) save(ctx context.Context, feedback string) (Result, error) {
	if err := s.Storage.Save(ctx, s.Model.Snapshot()); err != nil {
		s.Logger.Error("saving address book failed", err, map[string]interface{}{"path": s.Storage.Path()})
		return Result{Feedback: feedback}, fmt.Errorf("save address book: %w", err)
	}
	s.Logger.Debug("address book saved", map[string]interface{}{"path": s.Storage.Path()})
	return Result{Feedback: feedback}, nil
}

// NameOrTagContains builds the predicate used by Find.
func NameOrTagContains(keywords []string) model.Predicate {
	return func(p domain.Person) bool {
		words := strings.Fields(p.Name())
		for _, kw := range keywords {
			for _, w := range words {
				if strings.EqualFold(w, kw) {
					return true
				}
			}
			if p.HasTag(kw) {
				return true
			}
		}
		return false
	}
}
