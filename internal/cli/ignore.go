package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Manage per-device ignore patterns",
}

var ignoreAddCmd = &cobra.Command{
	Use:   "add <device-id> <regex>",
	Short: "Exclude changed lines matching a regex from classification",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, err := parseDeviceID(args[0])
		if err != nil {
			return err
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		id, err := c.Deviations.AddIgnore(cmd.Context(), deviceID, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Ignore pattern %d added\n", id)
		return nil
	},
}

var ignoreListCmd = &cobra.Command{
	Use:   "list <device-id>",
	Short: "List a device's ignore patterns",
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

		patterns, err := c.Deviations.ListIgnores(cmd.Context(), deviceID)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(patterns))
		for _, p := range patterns {
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				p.Regex,
				p.AddedBy,
				p.AddedAt.Format(time.RFC3339),
			})
		}
		return render(patterns, []string{"ID", "REGEX", "ADDED BY", "ADDED AT"}, rows)
	},
}

func init() {
	ignoreCmd.AddCommand(ignoreAddCmd)
	ignoreCmd.AddCommand(ignoreListCmd)
}
