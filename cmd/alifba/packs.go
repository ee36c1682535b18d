package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/japaniel/alifba/pkg/content"
	"github.com/japaniel/alifba/pkg/journey"
	"github.com/japaniel/alifba/pkg/questions"
	"github.com/japaniel/alifba/pkg/selection"
)

type packsOptions struct {
	list     bool
	position string
	seed     uint64
}

func newPacksCmd(a *app) *cobra.Command {
	var o packsOptions
	cmd := &cobra.Command{
		Use:   "packs [minigame]",
		Short: "Generate question packs for a minigame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := questions.DefaultRegistry()
			out := cmd.OutOrStdout()
			if o.list || len(args) == 0 {
				for _, code := range reg.Codes() {
					mg, _ := reg.Lookup(code)
					fmt.Fprintf(out, "%s\t%d packs\n", code, mg.Packs)
				}
				return nil
			}

			p, err := a.pack(cmd.Context())
			if err != nil {
				return err
			}
			env, err := a.env(p, o)
			if err != nil {
				return err
			}
			batch, err := questions.NewGenerator(a.log).GenerateMiniGame(reg, args[0], env)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "batch %s: %s, %d packs\n", batch.ID, batch.MiniGame, len(batch.Packs))
			for i, qp := range batch.Packs {
				fmt.Fprintf(out, "%3d  %.2f  %s\n", i+1, qp.Difficulty(), qp.Report())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&o.list, "list", false, "List the registered minigames")
	cmd.Flags().StringVarP(&o.position, "position", "p", "", "Journey position (stage.block.session) gating the content")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "Random seed (0 picks one)")
	return cmd
}

// env assembles the builder environment from the pack and the teacher
// configuration.
func (a *app) env(p *content.Pack, o packsOptions) (questions.Env, error) {
	ix, err := a.index(p)
	if err != nil {
		return questions.Env{}, err
	}
	defaults, err := a.cfg.Teacher.Parameters()
	if err != nil {
		return questions.Env{}, err
	}

	opts := []selection.Option{selection.WithLogger(a.log.With("component", "selection"))}
	if o.seed != 0 {
		opts = append(opts, selection.WithRand(rand.New(rand.NewPCG(o.seed, o.seed))))
	}
	if o.position != "" {
		pos, err := journey.ParsePosition(o.position)
		if err != nil {
			return questions.Env{}, err
		}
		j, err := p.Journey()
		if err != nil {
			return questions.Env{}, err
		}
		if _, ok := j.Session(pos); !ok {
			return questions.Env{}, fmt.Errorf("no play session at %s", pos)
		}
		opts = append(opts, selection.WithGate(j.Gate(pos)))
	}

	env := questions.Env{Index: ix, Engine: selection.New(opts...), Defaults: &defaults}
	if a.cfg.Teacher.VerbosePacks {
		env.Log = a.log.With("component", "questions")
	}
	return env, nil
}
