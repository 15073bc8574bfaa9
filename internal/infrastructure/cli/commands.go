package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/addrbook/internal/application/session"
	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/model"
)

// dataCommands are available both as one-shot commands and inside the shell.
func dataCommands(rt *runtime) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(rt),
		newAddCommand(rt),
		newDeleteCommand(rt),
		newEditCommand(rt),
		newPinCommand(rt, true),
		newPinCommand(rt, false),
		newClearCommand(rt),
	}
}

func newListCommand(rt *runtime) *cobra.Command {
	var (
		sortKeys []string
		keywords []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persons, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := rt.container.Session
			sorting := cmd.Flags().Changed("sort")
			// Reject bad keys before the filter is touched and committed.
			if sorting {
				if _, err := model.ParseSortKeys(sortKeys...); err != nil {
					return err
				}
			}
			var (
				res session.Result
				err error
			)
			if len(keywords) > 0 {
				res, err = svc.Find(keywords)
			} else {
				res, err = svc.List()
			}
			if err != nil {
				return err
			}
			if sorting {
				if _, err := svc.Sort(sortKeys); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Feedback)
			return RenderPersons(out, rt.container.Model.FilteredPersons())
		},
	}

	cmd.Flags().StringSliceVarP(&sortKeys, "sort", "s", nil, "Sort by field prefixes n,p,e,a,t (earlier keys win)")
	cmd.Flags().StringSliceVarP(&keywords, "find", "f", nil, "Only show persons whose name or tags match a keyword")
	return cmd
}

func newAddCommand(rt *runtime) *cobra.Command {
	var (
		name, phone, email, address string
		tags                        []string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a person",
		Example: `  addrbook add --name "John Doe" --phone 98765432 --email johnd@example.com --address "311, Clementi Ave 2" --tag friends`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.NewPerson(name, phone, email, address, tags)
			if err != nil {
				return err
			}
			res, err := rt.container.Session.Add(cmd.Context(), p)
			return printResult(cmd, res, err)
		},
	}

	addPersonFlags(cmd, &name, &phone, &email, &address, &tags)
	for _, flag := range []string{"name", "phone", "email", "address"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func newEditCommand(rt *runtime) *cobra.Command {
	var (
		name, phone, email, address string
		tags                        []string
	)

	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit the person at INDEX; use --tag \"\" to clear tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			var edit domain.PersonEdit
			flags := cmd.Flags()
			if flags.Changed("name") {
				edit.Name = &name
			}
			if flags.Changed("phone") {
				edit.Phone = &phone
			}
			if flags.Changed("email") {
				edit.Email = &email
			}
			if flags.Changed("address") {
				edit.Address = &address
			}
			if flags.Changed("tag") {
				edit.Tags = &tags
			}
			if edit == (domain.PersonEdit{}) {
				return errors.New("at least one field to edit must be provided")
			}
			res, err := rt.container.Session.Edit(cmd.Context(), index, edit)
			return printResult(cmd, res, err)
		},
	}

	addPersonFlags(cmd, &name, &phone, &email, &address, &tags)
	return cmd
}

func newDeleteCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the person at INDEX of the displayed list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			res, err := rt.container.Session.Delete(cmd.Context(), index)
			return printResult(cmd, res, err)
		},
	}
}

func newPinCommand(rt *runtime, pin bool) *cobra.Command {
	use, short := "pin INDEX", "Keep the person at INDEX at the top of the list"
	if !pin {
		use, short = "unpin INDEX", "Return the person at INDEX to the normal order"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			svc := rt.container.Session
			var res session.Result
			if pin {
				res, err = svc.Pin(cmd.Context(), index)
			} else {
				res, err = svc.Unpin(cmd.Context(), index)
			}
			return printResult(cmd, res, err)
		},
	}
}

func newClearCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.container.Session.Clear(cmd.Context())
			return printResult(cmd, res, err)
		},
	}
}

func addPersonFlags(cmd *cobra.Command, name, phone, email, address *string, tags *[]string) {
	cmd.Flags().StringVarP(name, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(phone, "phone", "p", "", "Phone number, at least 3 digits")
	cmd.Flags().StringVarP(email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(address, "address", "a", "", "Address")
	cmd.Flags().StringSliceVarP(tags, "tag", "t", nil, "Tags (repeat or comma separate)")
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || index <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive integer", session.ErrInvalidIndex, arg)
	}
	return index, nil
}

// printResult prints the feedback of a successful command. A save failure
// still carries feedback because the model change itself went through.
func printResult(cmd *cobra.Command, res session.Result, err error) error {
	if res.Feedback != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Feedback)
	}
	return err
}
