package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the pending workflow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		pending, err := c.Proposals.List(cmd.Context(), "pending")
		if err != nil {
			return err
		}

		fmt.Printf("Server:            %s\n", viper.GetString("server"))
		fmt.Printf("Pending proposals: %d\n", len(pending))
		for _, p := range pending {
			fmt.Printf("  #%d device %d by %s (%s)\n", p.ID, p.DeviceID, p.ProposedBy, p.Comment)
		}
		return nil
	},
}
