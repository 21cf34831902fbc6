package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/rubin/cmd/kv"
	"github.com/ValentinKolb/rubin/cmd/serve"
	"github.com/ValentinKolb/rubin/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "rubin",
		Short: "small networked key-value store",
		Long: fmt.Sprintf(`rubin (v%s)

A small key-value store for strings, reachable over a line based text
protocol (<OPCODE>::<args>) with optional JSON snapshots on disk.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of rubin",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rubin v%s\n", Version)
		},
	}
)

func init() {
	// load .env files and RUBIN_* variables once for every command
	cobra.OnInitialize(util.InitEnv)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
