package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetops/wrangler/core/roster"
)

var techniciansCmd = &cobra.Command{
	Use:   "technicians",
	Short: "Manage technician qualifications",
}

var techniciansImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a qualification roster",
	Args:  cobra.ExactArgs(1),
	RunE:  techniciansImport,
}

func init() {
	techniciansCmd.AddCommand(techniciansImportCmd)
	rootCmd.AddCommand(techniciansCmd)
}

func techniciansImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	recs, err := roster.ReadQualifications(f)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	applied := svc.Manager.UpdateTechnicians(cmd.Context(), recs)
	fmt.Printf("%d of %d records applied\n", applied, len(recs))
	return nil
}
