package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnt-ai/searchcore/internal/board"
)

func newPerftCmd() *cobra.Command {
	var (
		fen   string
		depth int
	)

	cmd := &cobra.Command{
		Use:   "perft",
		Short: "Count leaf nodes of the move tree to a fixed depth (move generator sanity check)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := board.ParseFEN(fen)
			if err != nil {
				return fmt.Errorf("parsing position: %w", err)
			}

			start := time.Now()
			nodes := perft(pos, depth)
			elapsed := time.Since(start)

			fmt.Printf("perft(%d) = %d nodes in %s (%.0f nodes/sec)\n",
				depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
			return nil
		},
	}

	cmd.Flags().StringVar(&fen, "fen", board.StartFEN, "position to search, in the engine's FEN-like grammar")
	cmd.Flags().IntVar(&depth, "depth", 4, "perft depth")
	return cmd
}

// perft counts the leaf positions reachable in exactly depth plies,
// the standard move-generator correctness check adapted from the
// teacher's perft harness to Guard & Towers' slide-amount moves.
func perft(pos *board.GameState, depth int) uint64 {
	if over, _ := pos.IsTerminal(); over {
		return 0
	}
	if depth == 0 {
		return 1
	}

	moves := board.GenerateAll(pos)
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.ApplyMove(m)
		nodes += perft(pos, depth-1)
		pos.UndoMove(undo)
	}
	return nodes
}
