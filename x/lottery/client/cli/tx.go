package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/Candra0x6/Roca-sub001/x/lottery/types"
)

// GetTxCmd returns the transaction commands for the lottery module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "lottery",
		Short:                      "Lottery module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdRequestDraw(),
		CmdBatchProcessDraws(),
		CmdFundPrizePool(),
	)

	return cmd
}

// CmdRequestDraw returns the command to request a draw for a pool
func CmdRequestDraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-draw [pool-id]",
		Short: "Request a prize draw for an eligible pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgRequestDraw{
				Caller: clientCtx.GetFromAddress().String(),
				PoolID: poolID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdBatchProcessDraws returns the command to resolve pending draws
func CmdBatchProcessDraws() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process-draws [draw-id]...",
		Short: "Resolve and pay out a list of pending draws",
		Args:  cobra.MinimumNArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			drawIDs := make([]uint64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid draw id %q: %v", arg, err)
				}
				drawIDs = append(drawIDs, id)
			}

			msg := &types.MsgBatchProcessDraws{
				Caller:  clientCtx.GetFromAddress().String(),
				DrawIDs: drawIDs,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFundPrizePool returns the command to fund the prize treasury
func CmdFundPrizePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund [pool-id] [amount]",
		Short: "Fund the prize treasury on behalf of a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id: %v", err)
			}

			msg := &types.MsgFundPrizePool{
				Funder: clientCtx.GetFromAddress().String(),
				PoolID: poolID,
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
