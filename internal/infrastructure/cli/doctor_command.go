package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/addrbook/internal/application/doctor"
	"github.com/doeshing/addrbook/internal/infrastructure/config"
	"github.com/doeshing/addrbook/internal/infrastructure/storage"
)

func newDoctorCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the preferences and the address book file",
		Args:  cobra.NoArgs,
		// Runs without the container so a broken data file can be reported.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := &doctor.Service{
				PrefsStore:  config.NewFileLoader(""),
				OpenStorage: storage.Open,
			}
			report, err := svc.Run(cmd.Context(), rt.dataPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, check := range report.Checks {
				fmt.Fprintf(out, "[%s] %s: %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Details)
			}
			if report.Failed() {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}
}
