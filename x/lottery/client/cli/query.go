package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// GetQueryCmd returns the cli query commands for the lottery module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "lottery",
		Short:                      "Querying commands for the lottery module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryDraw(),
		CmdQueryLeaderboard(),
		CmdQueryConfig(),
	)

	return cmd
}

// CmdQueryDraw returns the command to query a draw by id
func CmdQueryDraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw [draw-id]",
		Short: "Query a lottery draw by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Draw query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryLeaderboard returns the command to show the winners leaderboard
func CmdQueryLeaderboard() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top winners by cumulative winnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Leaderboard query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryConfig returns the command to show the default draw configuration
func CmdQueryConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the default lottery configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := json.MarshalIndent(types.DefaultLotteryConfig(), "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
