package main

import (
	"github.com/spf13/cobra"
)

func newHashCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [text...]",
		Short: "Print the content hash of each input",
		Long: "hash builds an engine string from each input and prints its 31-hash.\n" +
			"Inputs that are canonical array indices also report the parsed index.",
		RunE: func(_ *cobra.Command, args []string) error {
			texts, err := c.inputs(args)
			if err != nil {
				return err
			}
			for _, text := range texts {
				s, err := c.engine.FromString(text)
				if err != nil {
					return err
				}
				var r report
				r.add("text", text)
				r.add("hash", hexHash(c.engine.Hash(s)))
				r.add("units", s.Len())
				r.add("encoding", encodingName(s))
				if idx, ok := s.ToArrayIndex(); ok {
					r.add("array_index", idx)
				}
				if err := c.emit(r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
