// Command seed regenerates the canonical preset dataset: it runs the full
// pipeline over every built-in profile, derives the stage baselines from the
// computed values, and stores the result.
package main

import (
	"context"
	"log"
	"time"

	"Facade/internal/auth"
	association "Facade/internal/calc/association"
	pipeline "Facade/internal/calc/pipeline"
	"Facade/internal/preset"
	"Facade/internal/repo"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	db := auth.InitDB()
	defer db.Close()
	store := repo.NewPostgresDB(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded := 0
	for _, p := range preset.Builtin() {
		res, err := pipeline.Run(pipeline.Input{Params: p.Params})
		if err != nil {
			log.Printf("skip %s: %v", p.ID, err)
			continue
		}
		p.Baseline = baselineFrom(res)
		if err := store.SavePreset(ctx, p); err != nil {
			log.Printf("save %s: %v", p.ID, err)
			continue
		}
		seeded++
	}
	log.Printf("seeded %d presets", seeded)
}

// baselineFrom records the observed stage values of a clean pipeline pass as
// the expected references, so later runs of the same preset correlate near 1.
func baselineFrom(res pipeline.Result) association.Baseline {
	stages := make(map[string]float64, len(res.Association.Comparison))
	for _, row := range res.Association.Comparison {
		stages[row.Stage] = row.Observed
	}
	return association.Baseline{Stages: stages}
}
