package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// GetQueryCmd returns the cli query commands for the savings module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "savings",
		Short:                      "Querying commands for the savings module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPool(),
		CmdQueryPools(),
		CmdQueryConstraints(),
	)

	return cmd
}

// CmdQueryPool returns the command to query a pool by id
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a savings pool by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Pool query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPools returns the command to list pools by status
func CmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools [status]",
		Short: "List savings pools, optionally filtered by status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := "all"
			if len(args) > 0 {
				status = args[0]
			}
			fmt.Printf("Pool listing (%s) requires running node connection\n", status)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryConstraints returns the command to show the creation constraints
func CmdQueryConstraints() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constraints",
		Short: "Show the default pool creation constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := json.MarshalIndent(types.DefaultGlobalConstraints(), "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
