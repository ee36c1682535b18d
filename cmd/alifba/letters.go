package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/japaniel/alifba/pkg/catalog"
)

func newLettersCmd(a *app) *cobra.Command {
	var base, word, kind string
	cmd := &cobra.Command{
		Use:   "letters",
		Short: "List catalog letters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pack(cmd.Context())
			if err != nil {
				return err
			}
			ix, err := a.index(p)
			if err != nil {
				return err
			}

			var refs []catalog.LetterRef
			switch {
			case word != "":
				w, ok := ix.Catalog().Word(word)
				if !ok {
					return fmt.Errorf("unknown word %q", word)
				}
				refs = ix.LettersInWord(w)
			case base != "":
				refs = ix.LettersWithBase(base)
			case kind != "":
				var k catalog.LetterKind
				if err := k.UnmarshalText([]byte(kind)); err != nil {
					return err
				}
				refs = ix.LettersByKind(k)
			default:
				for _, l := range ix.Catalog().Letters() {
					refs = append(refs, catalog.Ref(l))
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tTYPE\tFORM\tGLYPH")
			for _, r := range refs {
				l := r.Letter()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.Kind, l.Type, r.Form(), r.DisplayString())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Only letters built on this base letter id")
	cmd.Flags().StringVar(&word, "word", "", "Letters of this word id, in order")
	cmd.Flags().StringVar(&kind, "kind", "", "Only letters of this kind (Letter, LetterVariation, Symbol, DiacriticCombo, Diphthong)")
	return cmd
}
