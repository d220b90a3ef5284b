package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcrawford/cadence/internal/engine"
)

var scoreDays int
var monthsBack int

var scoreCmd = &cobra.Command{
	Use:   "score <habit>",
	Short: "Show the habit's strength over the trailing window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		h, err := resolveHabit(db, args[0])
		if err != nil {
			return err
		}

		days := scoreDays
		if days <= 0 {
			days = cfg.Scoring.WindowDays
		}

		scores, err := engine.New(db).ComputeScores(h, days)
		if err != nil {
			return err
		}

		for _, sc := range scores {
			fmt.Printf("%s  %5.1f%%  %s\n", sc.Day, sc.Value*100, bar(sc.Value))
		}
		return nil
	},
}

var monthsCmd = &cobra.Command{
	Use:   "months <habit>",
	Short: "Show done-day counts per calendar month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		h, err := resolveHabit(db, args[0])
		if err != nil {
			return err
		}

		back := monthsBack
		if back <= 0 {
			back = cfg.Scoring.MonthsBack
		}

		buckets, err := engine.New(db).ComputeMonthBuckets(h, back)
		if err != nil {
			return err
		}

		for _, b := range buckets {
			fmt.Printf("%s  %3d  %s\n", engine.MonthLabel(b.Month), b.Count, strings.Repeat("#", b.Count))
		}
		return nil
	},
}

// bar renders a score as a 20-char meter.
func bar(v float64) string {
	filled := int(v * 20)
	if filled > 20 {
		filled = 20
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

func init() {
	scoreCmd.Flags().IntVar(&scoreDays, "days", 0, "window size in days (default from config)")
	monthsCmd.Flags().IntVar(&monthsBack, "back", 0, "months to include (default from config)")
}
