package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/beanboi7/chyp8/chyp"
	"github.com/beanboi7/chyp8/emu/cpu"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm path/ROM",
	Short: "print the ROM as a list of instructions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := chyp.LoadGame(args[0])
		if err != nil {
			return err
		}
		return writeListing(cmd.OutOrStdout(), rom)
	},
}

// writeListing prints one line per word, addressed from the program start.
// Data embedded in the program is listed as instructions too.
func writeListing(w io.Writer, rom []byte) error {
	const start = 0x200
	for i := 0; i+1 < len(rom); i += 2 {
		op := uint16(rom[i])<<8 | uint16(rom[i+1])
		if _, err := fmt.Fprintf(w, "%03X  %04X  %s\n", start+i, op, cpu.Decode(op)); err != nil {
			return err
		}
	}
	if len(rom)%2 == 1 {
		last := rom[len(rom)-1]
		if _, err := fmt.Fprintf(w, "%03X  %02X    DB $%02X\n", start+len(rom)-1, last, last); err != nil {
			return err
		}
	}
	return nil
}
