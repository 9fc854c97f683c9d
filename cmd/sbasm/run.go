package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/sbasm/assembler"
	"github.com/ezrec/sbasm/emulator"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] source_file(s)",
	Short: "run a program in the emulator.",
	Long: `Assemble the source file(s) into one program, run it in the emulator from
	 the entry label until nothing is powered, and print the requested registers.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		regs, err := parseRegisters(getStringArray(cmd, "reg"))
		if err != nil {
			fatal(err)
		}

		computer, err := readComputer(cmd)
		if err != nil {
			fatal(err)
		}

		seq, err := readPrograms(cmd, args)
		if err != nil {
			fatal(err)
		}

		asm := assembler.New(computer, seq)
		defer asm.Close()

		emu := emulator.NewEmulator()
		emu.Verbose = getFlag(cmd, "verbose")
		emu.MaxTicks = getInt(cmd, "max-ticks")

		err = emu.Load(asm)
		if err != nil {
			fatal(err)
		}

		err = emu.Run(getString(cmd, "entry"))
		log.Debugf("sbasm: %d ticks", emu.Ticks())
		if err != nil {
			fatal(err)
		}

			for _, reg := range regs {
			value := emu.Register(reg)
			fmt.Fprintf(os.Stdout, "%v\t%d\t%#08x\n", reg, value, uint32(value))
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("entry", "e", "main", "label to start at")
	runCmd.Flags().StringArrayP("reg", "r", []string{"r0", "r1", "r2", "r3"}, "register to print when done")
	runCmd.Flags().Int("max-ticks", emulator.MAX_TICKS, "tick limit, or 0 for none")
}
