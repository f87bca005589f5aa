package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Ingest retrieved device configurations",
}

var snapshotRecordFile string

var snapshotRecordCmd = &cobra.Command{
	Use:   "record <device-id>",
	Short: "Record a retrieved configuration and classify its deviation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, err := parseDeviceID(args[0])
		if err != nil {
			return err
		}

		text, err := os.ReadFile(snapshotRecordFile)
		if err != nil {
			return fmt.Errorf("read configuration file: %w", err)
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		res, err := c.Deviations.RecordSnapshot(cmd.Context(), deviceID, string(text))
		if err != nil {
			return err
		}

		fmt.Printf("Snapshot %d recorded: severity %s (+%d/-%d)\n",
			res.SnapshotID, res.Severity, res.Stats.Added, res.Stats.Removed)
		return nil
	},
}

func init() {
	snapshotRecordCmd.Flags().StringVarP(&snapshotRecordFile, "file", "f", "", "configuration file to record (required)")
	snapshotRecordCmd.MarkFlagRequired("file")

	snapshotCmd.AddCommand(snapshotRecordCmd)
}
