package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Inspect device baselines",
}

var baselineGetCmd = &cobra.Command{
	Use:   "get <device-id>",
	Short: "Show a device's active baseline",
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

		b, err := c.Baselines.Get(cmd.Context(), deviceID)
		if err != nil {
			return err
		}

		return render(b,
			[]string{"DEVICE", "SNAPSHOT", "HASH", "SET BY", "SET AT"},
			[][]string{{
				strconv.FormatInt(b.DeviceID, 10),
				strconv.FormatInt(b.SnapshotID, 10),
				shortHash(b.ContentHash),
				b.SetBy,
				b.SetAt.Format(time.RFC3339),
			}})
	},
}

var baselineHistoryCmd = &cobra.Command{
	Use:   "history <device-id>",
	Short: "List a device's replaced baselines",
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

		entries, err := c.Baselines.History(cmd.Context(), deviceID)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID, 10),
				strconv.FormatInt(e.SnapshotID, 10),
				shortHash(e.ContentHash),
				e.ReplacedAt.Format(time.RFC3339),
			})
		}
		return render(entries, []string{"ID", "SNAPSHOT", "HASH", "REPLACED AT"}, rows)
	},
}

func init() {
	baselineCmd.AddCommand(baselineGetCmd)
	baselineCmd.AddCommand(baselineHistoryCmd)
}

func parseDeviceID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid device id: %s", s)
	}
	return id, nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
