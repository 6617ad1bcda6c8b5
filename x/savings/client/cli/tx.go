package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// GetTxCmd returns the transaction commands for the savings module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "savings",
		Short:                      "Savings pool transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdJoinPool(),
		CmdLeavePool(),
		CmdLockPool(),
		CmdTriggerCompletion(),
		CmdWithdrawShare(),
	)

	return cmd
}

// CmdCreatePool returns the command to create a savings pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [name] [contribution] [max-members] [duration-seconds] [strategy]",
		Short: "Create a new savings pool",
		Long: `Create a new fixed-contribution savings pool.

Examples:
  rocad tx savings create-pool "rent circle" 100 10 2592000 stable --from alice`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			maxMembers, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid max members: %v", err)
			}
			duration, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid duration: %v", err)
			}

			msg := &types.MsgCreatePool{
				Creator:            clientCtx.GetFromAddress().String(),
				Name:               args[0],
				ContributionAmount: args[1],
				MaxMembers:         maxMembers,
				Duration:           duration,
				StrategyTag:        args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdJoinPool returns the command to join a pool
func CmdJoinPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [pool-id] [amount]",
		Short: "Join an open pool with the exact contribution amount",
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

			msg := &types.MsgJoinPool{
				Member: clientCtx.GetFromAddress().String(),
				PoolID: poolID,
				Amount: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdLeavePool returns the command to leave an open pool
func CmdLeavePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave [pool-id]",
		Short: "Leave an open pool and refund the contribution",
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

			msg := &types.MsgLeavePool{
				Member: clientCtx.GetFromAddress().String(),
				PoolID: poolID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdLockPool returns the command to lock a pool early
func CmdLockPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [pool-id]",
		Short: "Lock a pool before capacity (creator only)",
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

			msg := &types.MsgLockPool{
				Creator: clientCtx.GetFromAddress().String(),
				PoolID:  poolID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTriggerCompletion returns the command to complete a matured pool
func CmdTriggerCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger-completion [pool-id]",
		Short: "Complete a matured pool (no-op when not yet mature)",
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

			msg := &types.MsgTriggerCompletion{
				Caller: clientCtx.GetFromAddress().String(),
				PoolID: poolID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawShare returns the command to withdraw from a completed pool
func CmdWithdrawShare() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [pool-id]",
		Short: "Withdraw contribution plus yield from a completed pool",
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

			msg := &types.MsgWithdrawShare{
				Member: clientCtx.GetFromAddress().String(),
				PoolID: poolID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
