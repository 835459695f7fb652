// Command analyze prints quick, human-readable heuristics about the opening
// position of a range of deals: exposed and buried aces, how many legal moves
// the first turn offers, and the longest movable run in each column.
//
//	go run ./cmd/analyze --from 1 --count 10
//	go run ./cmd/analyze --config two_cell --from 11982 --count 1 --yaml
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/engine"
)

// DealStats summarizes the opening position of one deal
type DealStats struct {
	Game           int64          `yaml:"game"`
	ExposedAces    []string       `yaml:"exposed_aces,omitempty"`
	BuriedAces     map[string]int `yaml:"buried_aces,omitempty"`
	AceDepth       int            `yaml:"ace_depth"`
	OpeningMoves   int            `yaml:"opening_moves"`
	ColumnMoves    int            `yaml:"column_moves"`
	FoundationPlay int            `yaml:"foundation_moves"`
	Runs           []int          `yaml:"runs"`
	LongestRun     int            `yaml:"longest_run"`
	Position       string         `yaml:"position"`
}

// Report aggregates the stats of a range of deals
type Report struct {
	RuleSet         string      `yaml:"rule_set"`
	Deals           []DealStats `yaml:"deals"`
	AvgAceDepth     float64     `yaml:"avg_ace_depth"`
	AvgOpeningMoves float64     `yaml:"avg_opening_moves"`
	Hardest         int64       `yaml:"hardest"`
	Easiest         int64       `yaml:"easiest"`
}

// analyzeDeal deals game and measures its opening position
func analyzeDeal(rules engine.RuleSet, game int64) (DealStats, error) {
	deck, err := engine.Deal(rules, game)
	if err != nil {
		return DealStats{}, err
	}

	stats := DealStats{
		Game:       game,
		BuriedAces: make(map[string]int),
		Position:   engine.AnalyzePosition(deck),
	}

	for _, id := range engine.ExposedCards(deck) {
		if _, rank, err := engine.ParseCardID(string(id)); err == nil && rank == engine.Ace {
			stats.ExposedAces = append(stats.ExposedAces, string(id))
		}
	}

	for ace, depth := range engine.BuriedAces(deck) {
		stats.AceDepth += depth
		if depth > 0 {
			stats.BuriedAces[string(ace)] = depth
		}
	}

	for _, seq := range engine.LegalMoves(deck) {
		stats.OpeningMoves++
		src, _ := deck.Pile(seq.Source())
		dst, _ := deck.Pile(seq.Destination())
		switch {
		case dst.Kind == engine.FoundationPile:
			stats.FoundationPlay++
		case src.Kind == engine.TableauPile && dst.Kind == engine.TableauPile:
			stats.ColumnMoves++
		}
	}

	for _, col := range deck.TableauIDs() {
		n := engine.RunLength(deck, col)
		stats.Runs = append(stats.Runs, n)
		if n > stats.LongestRun {
			stats.LongestRun = n
		}
	}

	return stats, nil
}

// analyzeRange measures count deals starting at from
func analyzeRange(rules engine.RuleSet, from int64, count int) (*Report, error) {
	if from < 1 || from > engine.MaxDealNumber {
		return nil, fmt.Errorf("game number must be between 1 and %d, got %d", engine.MaxDealNumber, from)
	}
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	report := &Report{RuleSet: rules.Name}
	for game := from; game < from+int64(count) && game <= engine.MaxDealNumber; game++ {
		stats, err := analyzeDeal(rules, game)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", game, err)
		}
		report.Deals = append(report.Deals, stats)
	}

	var depth, moves int
	for _, d := range report.Deals {
		depth += d.AceDepth
		moves += d.OpeningMoves
	}
	n := float64(len(report.Deals))
	report.AvgAceDepth = float64(depth) / n
	report.AvgOpeningMoves = float64(moves) / n

	// Deeper aces and fewer opening moves make a harder start
	ranked := make([]DealStats, len(report.Deals))
	copy(ranked, report.Deals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return difficulty(ranked[i]) > difficulty(ranked[j])
	})
	report.Hardest = ranked[0].Game
	report.Easiest = ranked[len(ranked)-1].Game

	return report, nil
}

func difficulty(d DealStats) int {
	return d.AceDepth*2 - d.OpeningMoves/4 - d.ColumnMoves - len(d.ExposedAces)*3
}

func printReport(w io.Writer, report *Report) {
	for _, d := range report.Deals {
		fmt.Fprintf(w, "\n=== Game #%d (%s) ===\n", d.Game, report.RuleSet)
		if len(d.ExposedAces) > 0 {
			fmt.Fprintf(w, "Exposed aces: %v\n", d.ExposedAces)
		} else {
			fmt.Fprintf(w, "Exposed aces: none\n")
		}

		aces := make([]string, 0, len(d.BuriedAces))
		for ace := range d.BuriedAces {
			aces = append(aces, ace)
		}
		sort.Strings(aces)
		for _, ace := range aces {
			fmt.Fprintf(w, "  %s under %d cards\n", ace, d.BuriedAces[ace])
		}

		fmt.Fprintf(w, "Ace depth: %d\n", d.AceDepth)
		fmt.Fprintf(w, "Opening moves: %d (column-to-column: %d, to foundation: %d)\n",
			d.OpeningMoves, d.ColumnMoves, d.FoundationPlay)
		fmt.Fprintf(w, "Runs per column: %v (longest %d)\n", d.Runs, d.LongestRun)
		fmt.Fprintf(w, "Position: %s\n", d.Position)

		if d.ColumnMoves == 0 && len(d.ExposedAces) == 0 {
			fmt.Fprintf(w, "⚠️  Only free-cell moves available on the first turn\n")
		}
	}

	fmt.Fprintf(w, "\n%d deals | avg ace depth %.1f | avg opening moves %.1f\n",
		len(report.Deals), report.AvgAceDepth, report.AvgOpeningMoves)
	fmt.Fprintf(w, "Hardest start: #%d | Easiest start: #%d\n", report.Hardest, report.Easiest)
}

func loadRules(configDir, name string) (engine.RuleSet, error) {
	if name == "" || name == engine.StandardRuleSet().Name {
		return engine.StandardRuleSet(), nil
	}
	mgr, err := config.NewManager(configDir)
	if err != nil {
		return engine.RuleSet{}, err
	}
	rules, err := mgr.LoadConfig(name)
	if err != nil {
		return engine.RuleSet{}, fmt.Errorf("rule set %s: %w", name, err)
	}
	return *rules, nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Opening statistics for a range of Freecell deals",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "from", Value: 1, Usage: "First game number"},
			&cli.IntFlag{Name: "count", Value: 10, Usage: "Number of deals to analyze"},
			&cli.StringFlag{Name: "config", Value: "standard", Usage: "Rule-set name"},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing rule-set configurations", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.BoolFlag{Name: "yaml", Usage: "Print the report as YAML"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rules, err := loadRules(cmd.String("config-dir"), cmd.String("config"))
			if err != nil {
				return err
			}

			report, err := analyzeRange(rules, int64(cmd.Int("from")), int(cmd.Int("count")))
			if err != nil {
				return err
			}

			if cmd.Bool("yaml") {
				enc := yaml.NewEncoder(cmd.Root().Writer)
				defer enc.Close()
				return enc.Encode(report)
			}
			printReport(cmd.Root().Writer, report)
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
