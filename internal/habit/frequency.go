package habit

import "fmt"

// Frequency is a target rate: Num completions every Den days.
// "3 times per week" is {Num: 3, Den: 7}; a daily habit is {1, 1}.
type Frequency struct {
	Num int
	Den int
}

// Common frequencies.
var (
	Daily   = Frequency{Num: 1, Den: 1}
	Weekly  = Frequency{Num: 1, Den: 7}
	Monthly = Frequency{Num: 1, Den: 30}
)

// Rate returns the target completions per day.
func (f Frequency) Rate() float64 {
	return float64(f.Num) / float64(f.Den)
}

// Validate rejects non-positive numerators or denominators.
func (f Frequency) Validate() error {
	if f.Num <= 0 {
		return fmt.Errorf("frequency numerator must be positive, got %d", f.Num)
	}
	if f.Den <= 0 {
		return fmt.Errorf("frequency denominator must be positive, got %d", f.Den)
	}
	return nil
}

func (f Frequency) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}
