package main

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

// maxListedUnits bounds the code unit listing in inspect output.
const maxListedUnits = 32

func newInspectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [text]",
		Short: "Show the layout and properties of a string",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			texts, err := c.inputs(args)
			if err != nil {
				return err
			}
			text := texts[0]
			s, err := c.engine.FromString(text)
			if err != nil {
				return err
			}

			var r report
			r.title = "inspect"
			describe(&r, "", s)
			r.add("utf8_bytes", len(text))
			r.add("graphemes", uniseg.GraphemeClusterCount(text))
			r.add("hash", hexHash(c.engine.Hash(s)))
			r.add("nfc", norm.NFC.IsNormalString(text))
			r.add("nfd", norm.NFD.IsNormalString(text))
			if idx, ok := s.ToArrayIndex(); ok {
				r.add("array_index", idx)
			}
			r.add("code_units", listUnits(s.ToUTF16()))
			return c.emit(r)
		},
	}
}

func listUnits(units []uint16) string {
	var b strings.Builder
	for i, u := range units {
		if i == maxListedUnits {
			fmt.Fprintf(&b, " ... (%d more)", len(units)-i)
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%04X", u)
	}
	return b.String()
}
