package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnt-ai/searchcore/internal/board"
	"github.com/gnt-ai/searchcore/internal/engine"
)

func newMoveCmd() *cobra.Command {
	var (
		fen        string
		depth      int
		timeMs     int64
		moveNumber int
	)

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Search a position and print the chosen move",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			logger := setupLogger()

			pos, err := board.ParseFEN(fen)
			if err != nil {
				return fmt.Errorf("parsing position: %w", err)
			}

			weights, err := loadWeights()
			if err != nil {
				return fmt.Errorf("loading weights: %w", err)
			}

			e := engine.NewEngine(ttSizeMB)
			e.SetWeights(weights)
			e.OnInfo = func(info engine.SearchInfo) {
				logger.Info().
					Int("depth", info.Depth).
					Int("score", info.Score).
					Uint64("nodes", info.Nodes).
					Dur("time", info.Time).
					Msg("iteration")
			}

			var best board.Move
			if depth > 0 {
				best = e.FindBestDepth(pos, depth)
			} else {
				best = e.FindBest(pos, timeMs, moveNumber, engine.PhaseMiddlegame)
			}

			printMoveReport(best.String(), e.Stats())
			return nil
		},
	}

	cmd.Flags().StringVar(&fen, "fen", board.StartFEN, "position to search, in the engine's FEN-like grammar")
	cmd.Flags().IntVar(&depth, "depth", 0, "fixed search depth (overrides --time)")
	cmd.Flags().Int64Var(&timeMs, "time", 5000, "time budget in milliseconds")
	cmd.Flags().IntVar(&moveNumber, "move-number", 1, "current move number, for time allocation")
	return cmd
}
