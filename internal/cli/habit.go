package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcrawford/cadence/internal/habit"
	"github.com/mcrawford/cadence/internal/store"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage tracked habits",
}

var (
	habitKind       string
	habitComparison string
	habitTarget     float64
	habitTimes      int
	habitPer        int
)

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new habit",
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

		h := habit.Habit{
			Name:        args[0],
			Kind:        habit.Kind(habitKind),
			Comparison:  habit.Comparison(habitComparison),
			TargetValue: habitTarget,
			Frequency:   habit.Frequency{Num: habitTimes, Den: habitPer},
		}
		if h.Kind == habit.Numeric && h.Comparison == "" {
			h.Comparison = habit.AtLeast
		}
		if err := db.CreateHabit(&h); err != nil {
			return err
		}
		fmt.Printf("added %q (%s, %s per %d days)\n", h.Name, h.Kind, pluralTimes(h.Frequency.Num), h.Frequency.Den)
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
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

		includeArchived, _ := cmd.Flags().GetBool("archived")
		habits, err := db.ListHabits(includeArchived)
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Println("no habits yet — try: cadence habit add \"read\"")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tFREQUENCY\tTARGET\tID")
		for _, h := range habits {
			target := "-"
			if h.Kind == habit.Numeric {
				target = fmt.Sprintf("%s %g", h.Comparison, h.TargetValue)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", h.Name, h.Kind, h.Frequency, target, h.ID)
		}
		return tw.Flush()
	},
}

var habitRmCmd = &cobra.Command{
	Use:   "rm <name-or-id>",
	Short: "Delete a habit and its log",
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
		if err := db.DeleteHabit(h.ID); err != nil {
			return err
		}
		fmt.Printf("deleted %q\n", h.Name)
		return nil
	},
}

// resolveHabit finds a habit by ID first, then by exact name.
func resolveHabit(db *store.DB, ref string) (*habit.Habit, error) {
	h, err := db.GetHabit(ref)
	if err != nil {
		return nil, err
	}
	if h == nil {
		h, err = db.FindHabitByName(ref)
		if err != nil {
			return nil, err
		}
	}
	if h == nil {
		return nil, fmt.Errorf("no habit named %q", ref)
	}
	return h, nil
}

func pluralTimes(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}

func init() {
	habitAddCmd.Flags().StringVar(&habitKind, "kind", "boolean", "habit kind: boolean or numeric")
	habitAddCmd.Flags().StringVar(&habitComparison, "comparison", "", "numeric comparison: at_least or at_most")
	habitAddCmd.Flags().Float64Var(&habitTarget, "target", 0, "numeric target value")
	habitAddCmd.Flags().IntVar(&habitTimes, "times", 1, "target completions per period")
	habitAddCmd.Flags().IntVar(&habitPer, "per", 1, "period length in days")

	habitListCmd.Flags().Bool("archived", false, "include archived habits")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitRmCmd)
}
