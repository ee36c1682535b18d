package questions

import (
	"fmt"
	"strings"
)

// Failure records one minigame that could not build its packs.
type Failure struct {
	MiniGame string
	Run      int
	Err      error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s (run %d): %v", f.MiniGame, f.Run, f.Err)
}

// SimulationReport summarizes a Simulate run.
type SimulationReport struct {
	Runs     int
	Packs    map[string]int
	Failures []Failure
}

func (r *SimulationReport) OK() bool { return len(r.Failures) == 0 }

func (r *SimulationReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d runs, %d minigames, %d failures", r.Runs, len(r.Packs), len(r.Failures))
	for _, f := range r.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.String())
	}
	return b.String()
}

// Simulate builds packs for the given minigames runs times each, with a
// fresh builder per run, and collects failures instead of stopping. An empty
// codes list means every registered minigame.
func Simulate(g *Generator, r *Registry, env Env, runs int, codes ...string) *SimulationReport {
	if len(codes) == 0 {
		codes = r.Codes()
	}
	rep := &SimulationReport{Runs: runs, Packs: make(map[string]int, len(codes))}
	for run := 1; run <= runs; run++ {
		for _, code := range codes {
			batch, err := g.GenerateMiniGame(r, code, env)
			if err != nil {
				g.log.Warn("simulation failed", "minigame", code, "run", run, "err", err)
				rep.Failures = append(rep.Failures, Failure{MiniGame: code, Run: run, Err: err})
				continue
			}
			rep.Packs[code] += len(batch.Packs)
		}
	}
	return rep
}
