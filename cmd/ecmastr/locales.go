package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/ecmastr/internal/engine"
)

func newLocalesCmd(c *cli) *cobra.Command {
	var fastOnly bool
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List collation locales and their comparison strategy",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cache := c.engine.LocaleCache()
			var r report
			r.title = "locales"
			var list []map[string]string
			for _, tag := range cache.Available() {
				opt := cache.CompareOption(tag, false)
				if fastOnly && opt != engine.CompareTryFastPath {
					continue
				}
				if c.jsonOut {
					list = append(list, map[string]string{"tag": tag.String(), "strategy": opt.String()})
				} else {
					r.add(tag.String(), opt.String())
				}
			}
			if c.jsonOut {
				r.add("locales", list)
				r.add("count", len(list))
			}
			return c.emit(r)
		},
	}
	cmd.Flags().BoolVar(&fastOnly, "fast", false, "Only list locales that use the fast path")
	return cmd
}
