package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/addrbook/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// LogOutput receives log lines; nil uses the standard logger.
	LogOutput io.Writer
}

// runtime carries the container between cobra hooks. It is built after
// flag parsing so --data and --verbose can shape it.
type runtime struct {
	opts      Options
	dataPath  string
	verbose   bool
	container *app.Container
}

// NewRootCmd wires the cobra root command. The returned func releases the
// container; cobra skips PersistentPostRunE when validation or RunE fails,
// so callers must invoke it after Execute returns.
func NewRootCmd(opts Options) (*cobra.Command, func() error) {
	root, rt := newRoot(opts)
	return root, rt.close
}

func newRoot(opts Options) (*cobra.Command, *runtime) {
	rt := &runtime{opts: opts}

	root := &cobra.Command{
		Use:   "addrbook",
		Short: "addrbook - a terminal address book",
		Long:  "addrbook keeps contacts in a local file and lets you find, sort, pin, undo and redo changes.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rt.dataPath, "data", "", "Address book file for this run (.json, .db or .sqlite)")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(dataCommands(rt)...)
	root.AddCommand(newPrefsCommand(rt))
	root.AddCommand(newDoctorCommand(rt))
	root.AddCommand(newShellCommand(rt))
	return root, rt
}

func (rt *runtime) open(cmd *cobra.Command) error {
	if rt.container != nil {
		return nil
	}
	container, err := app.BuildContainer(cmd.Context(), app.Options{
		Verbose:   rt.opts.Verbose || rt.verbose,
		DataPath:  rt.dataPath,
		LogOutput: rt.opts.LogOutput,
	})
	if err != nil {
		return err
	}
	rt.container = container
	return nil
}

func (rt *runtime) close() error {
	if rt.container == nil {
		return nil
	}
	err := rt.container.Close()
	rt.container = nil
	return err
}
