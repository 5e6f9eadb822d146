package cmd

import (
	"encoding/json"
	"strconv"

	"defilend/pkg/id"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, data json.RawMessage) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		cmd.Println(string(data))
		return
	}

	b, _ := json.MarshalIndent(v, "", "    ")
	cmd.Println(string(b))
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "show or initialize the lending pool",
}

var poolShowCmd = &cobra.Command{
	Use:   "show",
	Short: "show the pool totals",
	Run: func(cmd *cobra.Command, args []string) {
		var data json.RawMessage
		if err := provideAPIClient().Get(cmd.Context(), "/pool", nil, &data); err != nil {
			cmd.PrintErrln("get pool:", err)
			return
		}

		printJSON(cmd, data)
	},
}

var poolInitCmd = &cobra.Command{
	Use:   "init",
	Short: "initialize the pool with zero totals",
	Run: func(cmd *cobra.Command, args []string) {
		var data json.RawMessage
		if err := provideAPIClient().Post(cmd.Context(), "/pool", nil, &data); err != nil {
			cmd.PrintErrln("initialize pool:", err)
			return
		}

		printJSON(cmd, data)
	},
}

var positionCmd = &cobra.Command{
	Use:   "position <user>",
	Short: "show the deposit of a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var data json.RawMessage
		if err := provideAPIClient().Get(cmd.Context(), "/positions/"+args[0], nil, &data); err != nil {
			cmd.PrintErrln("get position:", err)
			return
		}

		printJSON(cmd, data)
	},
}

func newActionCmd(action, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   action + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			amount, err := cast.ToUint64E(args[0])
			if err != nil {
				cmd.PrintErrln("invalid amount", args[0])
				return
			}

			user, _ := cmd.Flags().GetString("user")
			if user == "" {
				cmd.PrintErrln("user is required")
				return
			}

			traceID, _ := cmd.Flags().GetString("trace")
			if traceID == "" {
				traceID = id.GenTraceID()
			}

			body := map[string]interface{}{
				"user":     user,
				"amount":   amount,
				"trace_id": traceID,
			}

			var data json.RawMessage
			if err := provideAPIClient().Post(cmd.Context(), "/"+action, body, &data); err != nil {
				cmd.PrintErrln(action+":", err)
				return
			}

			printJSON(cmd, data)
		},
	}

	c.Flags().StringP("user", "u", "", "user id")
	c.Flags().String("trace", "", "trace id, retrying with the same id applies the action once")
	return c
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions <user>",
	Short: "list the recorded actions of a user, newest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		query := map[string]string{"limit": strconv.Itoa(limit)}

		var data json.RawMessage
		if err := provideAPIClient().Get(cmd.Context(), "/transactions/"+args[0], query, &data); err != nil {
			cmd.PrintErrln("list transactions:", err)
			return
		}

		printJSON(cmd, data)
	},
}

func init() {
	poolCmd.AddCommand(poolShowCmd, poolInitCmd)
	rootCmd.AddCommand(poolCmd, positionCmd)

	rootCmd.AddCommand(
		newActionCmd("supply", "deposit into the pool"),
		newActionCmd("borrow", "borrow against the own deposit"),
		newActionCmd("repay", "repay pool borrows"),
		newActionCmd("withdraw", "withdraw from the own deposit"),
	)

	rootCmd.AddCommand(transactionsCmd)
	transactionsCmd.Flags().IntP("limit", "l", 50, "max records")
}
