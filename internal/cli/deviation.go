package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var deviationCmd = &cobra.Command{
	Use:   "deviation",
	Short: "Review configuration deviations",
}

var deviationListCmd = &cobra.Command{
	Use:   "list <device-id>",
	Short: "List a device's deviation events, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, err := parseDeviceID(args[0])
		if err != nil {
			return err
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		events, err := c.Deviations.List(cmd.Context(), deviceID)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID, 10),
				e.Severity,
				fmt.Sprintf("+%d/-%d", e.Stats.Added, e.Stats.Removed),
				strconv.FormatInt(e.SnapshotID, 10),
				e.CreatedAt.Format(time.RFC3339),
			})
		}
		return render(events, []string{"ID", "SEVERITY", "DIFF", "SNAPSHOT", "DETECTED AT"}, rows)
	},
}

func init() {
	deviationCmd.AddCommand(deviationListCmd)
}
