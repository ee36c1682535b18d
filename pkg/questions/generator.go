package questions

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/japaniel/alifba/pkg/logger"
)

// Batch is the result of one generation run.
type Batch struct {
	ID        string
	MiniGame  string
	CreatedAt time.Time
	Packs     []QuestionPack
}

// Generator runs builders and stamps their output.
type Generator struct {
	log *logger.Logger
	now func() time.Time

	mu      sync.Mutex
	entropy *rand.Rand
}

func NewGenerator(log *logger.Logger) *Generator {
	return &Generator{
		log:     logger.OrNop(log),
		now:     time.Now,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) newID(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// Generate builds n packs with b. Packs are sorted by difficulty when the
// builder asks for it.
func (g *Generator) Generate(code string, b Builder, n int) (*Batch, error) {
	packs, err := b.BuildPacks(n)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", code, err)
	}
	if p := b.Parameters(); p != nil && p.SortPacksByDifficulty {
		sort.SliceStable(packs, func(i, j int) bool { return packs[i].Difficulty() < packs[j].Difficulty() })
	}

	now := g.now()
	batch := &Batch{ID: g.newID(now), MiniGame: code, CreatedAt: now, Packs: packs}
	g.log.Debug("question packs generated", "batch", batch.ID, "minigame", code, "packs", len(packs))
	return batch, nil
}

// GenerateMiniGame looks the minigame up in r and generates its packs.
func (g *Generator) GenerateMiniGame(r *Registry, code string, env Env) (*Batch, error) {
	mg, err := r.Lookup(code)
	if err != nil {
		return nil, err
	}
	return g.Generate(code, mg.New(env), mg.Packs)
}
