package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcrawford/cadence/internal/habit"
)

var logDate string
var logClear bool

var logCmd = &cobra.Command{
	Use:   "log <habit> [value]",
	Short: "Record a completion for today (or --date)",
	Long: `Record activity for a habit. Boolean habits take no value.
Numeric habits take the logged amount in natural units, e.g.
"cadence log run 2.5".`,
	Args: cobra.RangeArgs(1, 2),
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

		day := habit.Today()
		if logDate != "" {
			day, err = habit.ParseDay(logDate)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
		}

		if logClear {
			if err := db.ClearCompletion(h.ID, day); err != nil {
				return err
			}
			fmt.Printf("cleared %q on %s\n", h.Name, day)
			return nil
		}

		value := int64(1)
		if h.Kind == habit.Numeric {
			if len(args) < 2 {
				return fmt.Errorf("numeric habit %q needs a value", h.Name)
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || amount < 0 {
				return fmt.Errorf("invalid value %q", args[1])
			}
			value = int64(math.Round(amount * habit.MagnitudeScale))
		} else if len(args) == 2 {
			return fmt.Errorf("boolean habit %q takes no value", h.Name)
		}

		if err := db.SetCompletion(h.ID, day, value); err != nil {
			return err
		}
		fmt.Printf("logged %q on %s\n", h.Name, day)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "day to log (2006-01-02, default today)")
	logCmd.Flags().BoolVar(&logClear, "clear", false, "remove the day's log entry instead")
}
