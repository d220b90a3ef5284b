package habit

import "testing"

func TestFrequencyRate(t *testing.T) {
	if r := Daily.Rate(); r != 1.0 {
		t.Errorf("daily rate = %g, want 1.0", r)
	}
	if r := (Frequency{Num: 3, Den: 7}).Rate(); r < 0.428 || r > 0.429 {
		t.Errorf("3/7 rate = %g", r)
	}
}

func TestFrequencyValidate(t *testing.T) {
	tests := []struct {
		f       Frequency
		wantErr bool
	}{
		{Frequency{1, 1}, false},
		{Frequency{3, 7}, false},
		{Frequency{0, 7}, true},
		{Frequency{1, 0}, true},
		{Frequency{-1, 7}, true},
		{Frequency{1, -7}, true},
	}
	for _, tt := range tests {
		err := tt.f.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) err = %v, wantErr %v", tt.f, err, tt.wantErr)
		}
	}
}

func TestHabitValidate(t *testing.T) {
	good := Habit{Name: "read", Kind: Boolean, Frequency: Daily}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid boolean habit rejected: %v", err)
	}

	numeric := Habit{Name: "run", Kind: Numeric, Comparison: AtLeast, TargetValue: 5, Frequency: Weekly}
	if err := numeric.Validate(); err != nil {
		t.Fatalf("valid numeric habit rejected: %v", err)
	}

	bad := []Habit{
		{Name: "", Kind: Boolean, Frequency: Daily},
		{Name: "x", Kind: "other", Frequency: Daily},
		{Name: "x", Kind: Numeric, Comparison: "near", Frequency: Daily},
		{Name: "x", Kind: Numeric, Comparison: AtLeast, TargetValue: -1, Frequency: Daily},
		{Name: "x", Kind: Boolean, Frequency: Frequency{1, 0}},
	}
	for i, h := range bad {
		if err := h.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
