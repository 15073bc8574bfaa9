package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
)

const shellPrompt = "addrbook> "

var errExitShell = errors.New("exit shell")

func newShellCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session with undo, redo and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, rt)
		},
	}
}

// runShell reads one command per line until exit or end of input. Every
// non-blank line is recorded in the command history, valid or not.
func runShell(cmd *cobra.Command, rt *runtime) error {
	out := cmd.OutOrStdout()
	reader := newLineReader(cmd.InOrStdin())
	defer func() { _ = reader.Close() }()

	fmt.Fprintf(out, "Address book: %s (%d persons). Type help for commands.\n",
		rt.container.Storage.Path(), rt.container.Model.FilteredPersons().Len())

	for {
		raw, err := reader.ReadLine(shellPrompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		rt.container.Session.RecordInput(line)

		args, err := splitArgs(line)
		if err == nil {
			err = executeShellLine(cmd, rt, args)
		}
		if errors.Is(err, errExitShell) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

// executeShellLine runs args against a fresh command tree so flag values
// never leak from one line into the next.
func executeShellLine(parent *cobra.Command, rt *runtime, args []string) error {
	tree := newShellTree(rt)
	tree.SetArgs(args)
	tree.SetIn(parent.InOrStdin())
	tree.SetOut(parent.OutOrStdout())
	tree.SetErr(parent.OutOrStdout())
	return tree.ExecuteContext(parent.Context())
}

func newShellTree(rt *runtime) *cobra.Command {
	tree := &cobra.Command{
		Use:           "",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	tree.AddCommand(dataCommands(rt)...)
	tree.AddCommand(
		newFindCommand(rt),
		newSortCommand(rt),
		newUndoCommand(rt, true),
		newUndoCommand(rt, false),
		newHistoryCommand(rt),
		newStatsCommand(rt),
		newPrefsCommand(rt),
		&cobra.Command{
			Use:   "exit",
			Short: "Leave the shell",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), "Bye!")
				return errExitShell
			},
		},
	)
	return tree
}

// splitArgs splits a shell line into words. Quotes group words and a
// backslash escapes the next character outside single quotes. Separators
// such as ; or | are rejected since one line runs one command.
func splitArgs(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", line, err)
	}
	if parser.Position >= 0 {
		return nil, fmt.Errorf("one command per line: %q", line)
	}
	return args, nil
}
