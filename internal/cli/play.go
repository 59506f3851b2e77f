package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/core/lines"
	"github.com/matzehuels/blockfill/pkg/game"
	"github.com/matzehuels/blockfill/pkg/observability"
)

// gameFlags holds the session overrides shared by play and simulate.
type gameFlags struct {
	size    int
	targets float64
	seed    uint64
	columns bool
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.size, "size", 0, "board side length (default from config)")
	cmd.Flags().Float64Var(&f.targets, "targets", 0, "target probability per cell (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 = from clock)")
	cmd.Flags().BoolVar(&f.columns, "columns", false, "also clear full columns")
}

// apply overrides config-derived options with explicitly set flags.
func (f *gameFlags) apply(cmd *cobra.Command, opts *game.Options) {
	if f.size != 0 {
		opts.Size = f.size
	}
	if cmd.Flags().Changed("targets") {
		opts.TargetProbability = game.Probability(f.targets)
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = f.seed
	}
	if f.columns {
		opts.ClearMode = lines.RowsAndColumns
	}
}

// playCommand creates the interactive game command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		flags   gameFlags
		logPath string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play blockfill in the terminal.

Move the cursor with the arrow keys or hjkl; the current piece is previewed at
the cursor in green when it fits and red when it does not. Cover every target
(◇) to finish the level.`,
		Example: `  blockfill play
  blockfill play --size 10 --seed 42
  blockfill play --log debug.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.GameOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd, &opts)

			// The terminal belongs to the game; events only go to a log file.
			opts.Hooks = observability.NoopGameHooks{}
			if logPath != "" {
				f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				fileLogger := newLogger(f, log.DebugLevel)
				opts.Logger = fileLogger
				opts.Hooks = newLogHooks(fileLogger)
			}

			s, err := game.New(opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			p := tea.NewProgram(NewPlayModel(s, cfg.Game.HintDuration.Duration), tea.WithAltScreen(), tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("run game: %w", err)
			}
			if m, ok := final.(PlayModel); ok && m.Err != nil {
				return m.Err
			}

			snap := s.Snapshot()
			printSuccess("Final score %s at level %s",
				StyleNumber.Render(fmt.Sprint(snap.Score)),
				StyleNumber.Render(fmt.Sprint(snap.Level)))
			printDetail("%d placements · %d lines cleared · %s", snap.Placements, snap.LinesCleared, formatElapsed(snap.Elapsed))
			printNextStep("Play the same seed again", fmt.Sprintf("%s play --seed %d", appName, snap.Seed))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&logPath, "log", "", "write debug events to this file")

	return cmd
}
