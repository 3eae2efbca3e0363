package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var workmateCmd = &cobra.Command{
	Use:   "workmate <employee-id>",
	Short: "List every driver connected through shared trips",
	Args:  cobra.ExactArgs(1),
	RunE:  workmateSphere,
}

func init() {
	rootCmd.AddCommand(workmateCmd)
}

func workmateSphere(cmd *cobra.Command, args []string) error {
	eid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("employee id: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	sphere := svc.Manager.WorkmateSphere(cmd.Context(), eid)
	if len(sphere) == 0 {
		fmt.Println("no workmates")
		return nil
	}
	for _, id := range sphere {
		fmt.Println(id)
	}
	return nil
}
