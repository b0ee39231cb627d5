// Command continuationgen performs the offline BFS enumeration of every
// field reachable from the empty board, recording the clearing hard-drop
// landings for each piece (spec §1's "external collaborator" that
// produces the continuation table consumed by the rest of the pipeline).
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/narrowstack/c4w/continuation"
	"github.com/narrowstack/c4w/field"
)

func main() {
	var outputPath string

	root := &cobra.Command{
		Use:   "continuationgen",
		Short: "Enumerate the continuation table by BFS from the empty field",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(outputPath)
		},
	}
	root.Flags().StringVarP(&outputPath, "output", "o", "continuation.bin", "path to write the continuation table")

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("continuationgen failed")
	}
}

// run does the BFS: the empty field is the seed; each frontier field is
// expanded over every piece and every rotation, and every distinct landing
// field not yet visited is pushed onto the queue.
func run(outputPath string) error {
	start := time.Now()
	table := continuation.New()

	visited := map[field.Field]struct{}{field.Empty: {}}
	queue := []field.Field{field.Empty}

	rotationsByPiece := make(map[field.Piece][]field.RotatedPiece, len(field.PIECES))
	for _, p := range field.PIECES {
		rotationsByPiece[p] = field.Rotations(p)
	}

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		for _, p := range field.PIECES {
			var landings []field.Field
			seen := make(map[field.Field]struct{})
			for _, rot := range rotationsByPiece[p] {
				for _, landed := range f.PossiblePositions(rot) {
					if _, ok := seen[landed]; ok {
						continue
					}
					seen[landed] = struct{}{}
					landings = append(landings, landed)
					if _, ok := visited[landed]; !ok {
						visited[landed] = struct{}{}
						queue = append(queue, landed)
					}
				}
			}
			// Recorded even when empty, so every visited field is a key
			// of the table (a field with no clearing landing is a loss).
			table.Put(f, p, landings)
		}

		if table.Len()%1000 == 0 {
			log.Info().Int("visited", len(visited)).Int("recorded", table.Len()).Msg("continuationgen progress")
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := continuation.Save(out, table); err != nil {
		return err
	}

	log.Info().
		Int("fields", table.Len()).
		Dur("elapsed", time.Since(start)).
		Str("output", outputPath).
		Msg("continuationgen done")
	return nil
}
