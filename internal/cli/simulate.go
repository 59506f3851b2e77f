package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/sim"
)

// maxGameRows caps the per-game table; larger runs only print the summary.
const maxGameRows = 25

// simulateCommand creates the headless simulation command.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		flags   gameFlags
		opts    sim.Options
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Let a random agent play",
		Long: `Play games headlessly with a random agent and report statistics.

The agent places the current piece at a uniformly chosen legal anchor, rotating
it up to three times when it fits nowhere. A game ends after --moves placements
or when no orientation of the current piece fits. Game i uses seed+i, so runs
are reproducible.`,
		Example: `  blockfill simulate --games 100 --seed 1
  blockfill simulate --games 10 --moves 500 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			gameOpts, err := cfg.GameOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd, &gameOpts)
			opts.Game = gameOpts

			spinner := newSpinnerWithContext(ctx, "Simulating...")
			opts.Progress = func(done, total int) {
				spinner.SetMessage(fmt.Sprintf("Simulating... %d/%d games", done, total))
			}
			prog := newProgress(loggerFromContext(ctx))
			spinner.Start()
			res, err := sim.NewRunner(c.Logger).Execute(ctx, opts)
			if err != nil {
				spinner.StopWithError("Simulation failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Simulated %d games", res.Stats.Games))

			if jsonOut {
				return writeResultJSON(os.Stdout, res)
			}
			printResult(res)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&opts.Games, "games", "n", sim.DefaultGames, "number of games")
	cmd.Flags().IntVar(&opts.Moves, "moves", sim.DefaultMoves, "placement budget per game")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent games (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	return cmd
}

func writeResultJSON(w io.Writer, res *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printResult(res *sim.Result) {
	if len(res.Games) <= maxGameRows {
		fmt.Println(gamesTable(res.Games))
		printNewline()
	}

	st := res.Stats
	printKeyValue("Games", fmt.Sprint(st.Games))
	printKeyValue("Best score", fmt.Sprint(st.BestScore))
	printKeyValue("Mean score", fmt.Sprintf("%.1f", st.MeanScore))
	printKeyValue("Max level", fmt.Sprint(st.MaxLevel))
	printKeyValue("Levels done", fmt.Sprint(st.LevelsCompleted))
	printKeyValue("Placements", fmt.Sprint(st.Placements))
	printKeyValue("Lines", fmt.Sprint(st.LinesCleared))
	printKeyValue("Stuck games", fmt.Sprint(st.StuckGames))
	printKeyValue("Duration", st.Duration.Round(time.Millisecond).String())
}

func gamesTable(games []sim.GameResult) string {
	rows := make([][]string, len(games))
	for i, g := range games {
		stuck := ""
		if g.Stuck {
			stuck = "stuck"
		}
		rows[i] = []string{
			fmt.Sprint(g.Seed),
			fmt.Sprint(g.Score),
			fmt.Sprint(g.Level),
			fmt.Sprint(g.Placements),
			fmt.Sprint(g.LinesCleared),
			fmt.Sprint(g.Rotations),
			stuck,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Seed", "Score", "Level", "Placed", "Lines", "Rotations", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 1:
				return StyleNumber
			case col == 6:
				return StyleWarning
			}
			return StyleValue
		}).
		Render()
}
