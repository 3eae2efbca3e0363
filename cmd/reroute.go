package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var rerouteCmd = &cobra.Command{
	Use:   "reroute <facility-id> <date>",
	Short: "Move a day's trips away from a facility",
	Args:  cobra.ExactArgs(2),
	RunE:  reroute,
}

func init() {
	rootCmd.AddCommand(rerouteCmd)
}

func reroute(cmd *cobra.Command, args []string) error {
	fid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("facility id: %w", err)
	}
	day, err := time.ParseInLocation(dateLayout, args[1], time.UTC)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	count := svc.Manager.RerouteWaste(cmd.Context(), fid, day)
	fmt.Printf("%d trips rerouted\n", count)
	return nil
}
