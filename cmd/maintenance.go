package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance <date>",
	Short: "Book maintenance for every overdue truck",
	Args:  cobra.ExactArgs(1),
	RunE:  scheduleMaintenance,
}

func init() {
	rootCmd.AddCommand(maintenanceCmd)
}

func scheduleMaintenance(cmd *cobra.Command, args []string) error {
	day, err := time.ParseInLocation(dateLayout, args[0], time.UTC)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	count := svc.Manager.ScheduleMaintenance(cmd.Context(), day)
	fmt.Printf("%d appointments booked\n", count)
	return nil
}
