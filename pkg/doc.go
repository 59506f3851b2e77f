// Package pkg provides the core libraries for Blockfill, a block-placement
// puzzle.
//
// # Overview
//
// A board is a square grid in which some cells are marked as targets. The
// player drops pieces (small boolean shapes) onto the board; a level is
// finished once every target cell is covered, and full rows are cleared for
// bonus points along the way. The pkg directory is organized into four areas:
//
//  1. [core] - Pure game rules (shapes, board, placement, clearing, scoring)
//  2. [game] - The session orchestrator every front end drives
//  3. [api], [session] - The JSON HTTP transport and its session registry
//  4. [sim] - Headless random-agent games
//
// # Architecture
//
// The flow of a single placement:
//
//	RequestPlacement(row, col)
//	         ↓
//	    [core/placement] (validate, then commit the footprint)
//	         ↓
//	    [core/lines] (clear completed rows, optionally columns)
//	         ↓
//	    [core/progress] (score, target check, level advance)
//	         ↓
//	    [core/supply] (promote the preview, draw a new one)
//
// Front ends never touch the board directly; they render from
// [game.Snapshot].
//
// # Quick Start
//
//	s, _ := game.New(game.Options{Size: 8, Seed: 42})
//	res, _ := s.RequestPlacement(0, 0)
//	if !res.Placed {
//	    s.RequestRotate()
//	}
//	fmt.Println(s.Snapshot().Score)
//
// # Main Packages
//
// ## Core Rules
//
// [core/shape] - Immutable piece shapes, clockwise rotation and the built-in
// catalog of seven pieces.
//
// [core/board] - The grid. Target marking and fill state are independent bits,
// so clearing a line never removes a target.
//
// [core/placement] - Fit checks ([placement.CanPlace]) and commits
// ([placement.Place]); always used as a pair.
//
// [core/lines] - Completed-line detection and clearing.
//
// [core/progress] - Score and level bookkeeping.
//
// [core/supply] - Uniform random piece draws with a one-piece preview.
//
// [core/hint] - Random uncovered target selection.
//
// ## Infrastructure
//
// [config] - TOML settings file (board, game, server, custom pieces).
//
// [observability] - Optional event hooks for game and HTTP instrumentation.
//
// [errors] - Structured error codes shared by every package.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/core/...     # Rules only
//	go test -run Example ./... # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core
// [core/shape]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/shape
// [core/board]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/board
// [core/placement]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/placement
// [core/lines]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/lines
// [core/progress]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/progress
// [core/supply]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/supply
// [core/hint]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/hint
// [game]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/game
// [game.Snapshot]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/game#Snapshot
// [placement.CanPlace]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/placement#CanPlace
// [placement.Place]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/core/placement#Place
// [api]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/api
// [session]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/session
// [sim]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/sim
// [config]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/blockfill/pkg/buildinfo
package pkg
