package main

import (
	"github.com/spf13/cobra"
)

func newFlattenCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "flatten <part> [part...]",
		Short: "Concatenate parts and flatten the result",
		Long: "flatten joins the inputs left to right with the engine's concatenation,\n" +
			"reports the resulting layout, then flattens it and reports it again.",
		RunE: func(_ *cobra.Command, args []string) error {
			parts, err := c.inputs(args)
			if err != nil {
				return err
			}
			s, err := c.engine.FromString(parts[0])
			if err != nil {
				return err
			}
			for _, p := range parts[1:] {
				next, err := c.engine.FromString(p)
				if err != nil {
					return err
				}
				if s, err = c.engine.Concat(s, next); err != nil {
					return err
				}
			}

			var r report
			r.title = "flatten"
			r.add("parts", len(parts))
			describe(&r, "before.", s)

			v, err := c.engine.Flatten(s)
			if err != nil {
				return err
			}
			r.add("flat.kind", v.Source().Kind().String())
			r.add("flat.units", v.Len())
			r.add("flat.offset", v.Start())
			r.add("hash", hexHash(c.engine.Hash(s)))
			r.add("text", s.String())
			return c.emit(r)
		},
	}
}
