package cli

import (
	"fmt"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/addrbook/internal/application/config"
	"github.com/doeshing/addrbook/internal/infrastructure/config"
)

const msgNoDifferencesFromDefault = "No differences from default preferences."

func newPrefsCommand(rt *runtime) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPrefs(cmd, rt)
		},
	}

	prefsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show preferences in effect",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showPrefs(cmd, rt)
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show differences from the default preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return diffPrefs(cmd, rt)
			},
		},
		&cobra.Command{
			Use:   "set-data PATH",
			Short: "Store a new address book location in the preferences file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setDataPath(cmd, rt, args[0])
			},
		},
	)
	return prefsCmd
}

func showPrefs(cmd *cobra.Command, rt *runtime) error {
	out := cmd.OutOrStdout()
	raw, err := yaml.Marshal(rt.container.Model.UserPrefs())
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	fmt.Fprintf(out, "# %s\n%s", rt.container.PrefsLoader.Path(), raw)
	return nil
}

func diffPrefs(cmd *cobra.Command, rt *runtime) error {
	defaults, err := config.Defaults(filepath.Dir(rt.container.PrefsLoader.Path()))
	if err != nil {
		return err
	}
	diff := cmp.Diff(defaults, rt.container.Model.UserPrefs())
	if diff == "" {
		fmt.Fprintln(cmd.OutOrStdout(), msgNoDifferencesFromDefault)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "(-default +current)")
	fmt.Fprint(cmd.OutOrStdout(), diff)
	return nil
}

// setDataPath updates the stored preferences. The address book already
// open for this run stays in use until the next start.
func setDataPath(cmd *cobra.Command, rt *runtime, path string) error {
	loader := rt.container.PrefsLoader
	prefs, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	prefs.AddressBookFilePath = abs
	if err := configapp.Validate(prefs); err != nil {
		return err
	}
	if err := loader.Save(cmd.Context(), prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	rt.container.Model.SetAddressBookFilePath(abs)
	fmt.Fprintf(cmd.OutOrStdout(), "Address book location set to %s\n", abs)
	return nil
}
