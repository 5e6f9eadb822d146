package cmd

import (
	"strconv"

	"defilend/pkg/sysversion"

	"github.com/spf13/cobra"
)

var sysversionCmd = &cobra.Command{
	Use:   "sysversion [version]",
	Short: "show or set the system version",
	Long:  "from version 1 on, borrows that would exceed the pool supplies are rejected",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		properties := providePropertyStore(database)

		if len(args) == 1 {
			version, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || version < 0 {
				cmd.PrintErrln("invalid version", args[0])
				return
			}

			if err := sysversion.SaveSysVersion(ctx, properties, version); err != nil {
				cmd.PrintErrln("save sysversion", err)
				return
			}
		}

		version, err := sysversion.ReadSysVersion(ctx, properties)
		if err != nil {
			cmd.PrintErrln("read sysversion", err)
			return
		}

		cmd.Println("sysversion:", version)
	},
}

func init() {
	rootCmd.AddCommand(sysversionCmd)
}
