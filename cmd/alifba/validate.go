package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/alifba/pkg/questions"
)

func newValidateCmd(a *app) *cobra.Command {
	var runs int
	var o packsOptions
	cmd := &cobra.Command{
		Use:   "validate [minigame]...",
		Short: "Check the content and simulate pack generation",
		Long:  "Builds the catalog, checks every play session against it, then generates packs for the given minigames (all by default) several times and reports the ones that fail.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pack(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := p.Catalog()
			if err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			j, err := p.Journey()
			if err != nil {
				return fmt.Errorf("journey: %w", err)
			}
			if err := j.Validate(cat); err != nil {
				return fmt.Errorf("journey: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catalog: %d letters, %d words, %d phrases; %d play sessions\n",
				len(cat.Letters()), len(cat.Words()), len(cat.Phrases()), len(j.Sessions()))

			env, err := a.env(p, o)
			if err != nil {
				return err
			}
			rep := questions.Simulate(questions.NewGenerator(a.log), questions.DefaultRegistry(), env, runs, args...)
			fmt.Fprintln(out, rep)
			if !rep.OK() {
				return fmt.Errorf("%d minigame runs failed", len(rep.Failures))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 3, "Simulated sessions per minigame")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "Random seed (0 picks one)")
	return cmd
}
