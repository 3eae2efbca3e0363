package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Schedule collection trips",
}

var tripScheduleCmd = &cobra.Command{
	Use:   "schedule <route-id> <start>",
	Short: "Schedule one route at a start time (2006-01-02 15:04)",
	Args:  cobra.ExactArgs(2),
	RunE:  tripSchedule,
}

var tripBatchCmd = &cobra.Command{
	Use:   "batch <truck-id> <date>",
	Short: "Pack a truck's unscheduled routes into a day",
	Args:  cobra.ExactArgs(2),
	RunE:  tripBatch,
}

func init() {
	tripCmd.AddCommand(tripScheduleCmd, tripBatchCmd)
	rootCmd.AddCommand(tripCmd)
}

func tripSchedule(cmd *cobra.Command, args []string) error {
	rid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("route id: %w", err)
	}
	start, err := time.ParseInLocation(timeLayout, args[1], time.UTC)
	if err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if svc.Manager.ScheduleTrip(cmd.Context(), rid, start) {
		fmt.Println("scheduled")
	} else {
		fmt.Println("rejected")
	}
	return nil
}

func tripBatch(cmd *cobra.Command, args []string) error {
	tid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("truck id: %w", err)
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

	count := svc.Manager.ScheduleTrips(cmd.Context(), tid, day)
	fmt.Printf("%d trips scheduled\n", count)
	return nil
}
