package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "sbasm",
	Short: "A cross-assembler for the scoreboard machine.",
	Long: `A cross-assembler for the Minecraft 1.8 scoreboard machine. Programs are
lowered to command blocks, which can be listed or run in an emulator.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{
			DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
		})
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("machine", "m", "", "machine description (YAML)")
	rootCmd.PersistentFlags().StringArrayP("define", "D", []string{}, "predefine an equate, as NAME=VALUE")
}
