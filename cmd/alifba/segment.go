package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/japaniel/alifba/pkg/segment"
)

func newSegmentCmd(a *app) *cobra.Command {
	var opts segment.Options
	var unicodes, visual bool
	cmd := &cobra.Command{
		Use:   "segment <text>...",
		Short: "Split Arabic text into catalog letters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pack(cmd.Context())
			if err != nil {
				return err
			}
			ix, err := a.index(p)
			if err != nil {
				return err
			}
			seg := ix.Segmenter()
			out := cmd.OutOrStdout()

			for _, text := range args {
				shaped := seg.Shape(text)
				fmt.Fprintf(out, "%s\n", text)
				if unicodes {
					fmt.Fprintf(out, "  unicodes: %s\n", segment.Unicodes(shaped))
				}
				occ := seg.Segment(shaped, opts)
				if visual {
					var v string
					v, occ = segment.ToVisual(shaped, occ)
					fmt.Fprintf(out, "  visual: %s\n", v)
				}
				for i, o := range occ {
					fmt.Fprintf(out, "  %d\t%s\t%s\t%s\t[%d-%d]\n", i, o.Letter.ID(), o.Letter.Form(), o.Letter.DisplayString(), o.From, o.To)
				}
				fmt.Fprintf(out, "  letters: %s\n", strings.Join(segment.IDs(occ), " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.SeparateDiacritics, "separate-diacritics", false, "Report diacritic combos as base letter plus symbol")
	cmd.Flags().BoolVar(&opts.SeparateVariations, "separate-variations", false, "Report lam ligatures as two letters")
	cmd.Flags().BoolVar(&unicodes, "unicodes", false, "Print the shaped codepoints")
	cmd.Flags().BoolVar(&visual, "visual", false, "Print the shaped text in visual order, with spans into it")
	return cmd
}
