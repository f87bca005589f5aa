package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/confguard/confguard/pkg/client"
)

var proposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "Drive the baseline-change workflow",
}

var proposalListStatus string

var proposalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List proposals, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		list, err := c.Proposals.List(cmd.Context(), proposalListStatus)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, p := range list {
			decidedBy := "-"
			if p.DecidedBy != nil {
				decidedBy = *p.DecidedBy
			}
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				strconv.FormatInt(p.DeviceID, 10),
				p.Status,
				p.ProposedBy,
				decidedBy,
				p.ProposedAt.Format(time.RFC3339),
			})
		}
		return render(list,
			[]string{"ID", "DEVICE", "STATUS", "PROPOSED BY", "DECIDED BY", "PROPOSED AT"}, rows)
	},
}

var proposalCreateFile string
var proposalCreateComment string

var proposalCreateCmd = &cobra.Command{
	Use:   "create <device-id>",
	Short: "Propose a new baseline from a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, err := parseDeviceID(args[0])
		if err != nil {
			return err
		}

		text, err := os.ReadFile(proposalCreateFile)
		if err != nil {
			return fmt.Errorf("read configuration file: %w", err)
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		res, err := c.Proposals.Create(cmd.Context(), deviceID, client.CreateProposalRequest{
			Snapshot: string(text),
			Comment:  proposalCreateComment,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Proposal %d created (%s)\n", res.ID, res.Status)
		return nil
	},
}

var proposalApproveCmd = &cobra.Command{
	Use:   "approve <proposal-id>",
	Short: "Approve a pending proposal, promoting its snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  decideRunE("approve"),
}

var proposalRejectCmd = &cobra.Command{
	Use:   "reject <proposal-id>",
	Short: "Reject a pending proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  decideRunE("reject"),
}

func decideRunE(action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid proposal id: %s", args[0])
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		var status string
		if action == "approve" {
			status, err = c.Proposals.Approve(cmd.Context(), id)
		} else {
			status, err = c.Proposals.Reject(cmd.Context(), id)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Proposal %d %s\n", id, status)
		return nil
	}
}

func init() {
	proposalListCmd.Flags().StringVar(&proposalListStatus, "status", "", "filter by status (pending, approved, rejected)")
	proposalCreateCmd.Flags().StringVarP(&proposalCreateFile, "file", "f", "", "configuration file to propose (required)")
	proposalCreateCmd.Flags().StringVarP(&proposalCreateComment, "comment", "m", "", "comment for the reviewers")
	proposalCreateCmd.MarkFlagRequired("file")

	proposalCmd.AddCommand(proposalListCmd)
	proposalCmd.AddCommand(proposalCreateCmd)
	proposalCmd.AddCommand(proposalApproveCmd)
	proposalCmd.AddCommand(proposalRejectCmd)
}
