package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/sbasm/assembler"
	"github.com/ezrec/sbasm/emulator"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [flags] source_file(s)",
	Short: "list the command blocks of a program.",
	Long: `Assemble the source file(s) into one program, place it, and list every
	 command block with its position and the labels it starts.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
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
		asm.SetTrackOutput(getFlag(cmd, "track-output"))

		emu := emulator.NewEmulator()
		err = emu.Load(asm)
		if err != nil {
			fatal(err)
		}

		var out io.Writer = os.Stdout
		if output := getString(cmd, "output"); len(output) != 0 {
			ouf, err := os.Create(output)
			if err != nil {
				fatal(err)
			}
			atexit.Register(func() { ouf.Close() })
			out = ouf
		}

		listing(out, emu, getFlag(cmd, "nbt"))
	},
}

// listing writes the placed fabric of emu.
func listing(out io.Writer, emu *emulator.Emulator, nbt bool) {
	for placed := range emu.Layout() {
		if len(placed.Labels) != 0 {
			fmt.Fprintf(out, "%s:\n", strings.Join(placed.Labels, ": "))
		}
		switch {
		case placed.Terminal:
			fmt.Fprintf(out, "\t%v\t; end\n", placed.Pos)
		case nbt:
			fmt.Fprintf(out, "\t%v\t%s\n", placed.Pos, placed.Block.NBT())
		default:
			fmt.Fprintf(out, "\t%v\t%v\n", placed.Pos, placed.Block)
		}
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("output", "o", "", "write the listing to a file")
	assembleCmd.Flags().Bool("nbt", false, "list the command block data tags")
	assembleCmd.Flags().Bool("track-output", false, "set TrackOutput on every command block")
}
