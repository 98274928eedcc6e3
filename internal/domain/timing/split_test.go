package timing

import "testing"

func TestSplit_SumsToTotal(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		weights []float64
		floor   int
	}{
		{"even", 300, []float64{1, 1, 1}, 24},
		{"skewed", 300, []float64{40, 2, 3, 1, 9}, 24},
		{"zero weights", 150, []float64{0, 0, 0, 0}, 12},
		{"floor infeasible", 20, []float64{5, 1, 1, 1, 1, 1, 1}, 5},
		{"thirds drift", 100, []float64{1, 1, 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.total, tt.weights, tt.floor)
			if len(got) != len(tt.weights) {
				t.Fatalf("expected %d parts, got %v", len(tt.weights), got)
			}
			sum := 0
			for _, v := range got {
				if v < 1 {
					t.Fatalf("expected every part >= 1, got %v", got)
				}
				sum += v
			}
			if sum != tt.total {
				t.Fatalf("expected sum %d, got %d (%v)", tt.total, sum, got)
			}
		})
	}
}

func TestSplit_RespectsFloor(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		weights []float64
		floor   int
	}{
		{"light tail", 300, []float64{50, 1, 1, 1}, 24},
		{"short last beat", 150, []float64{9, 7, 8, 1}, 12},
		{"short last beat odd total", 151, []float64{11, 13, 7, 2}, 13},
		{"two light", 450, []float64{30, 1, 25, 1}, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.total, tt.weights, tt.floor)
			for i, v := range got {
				if v < tt.floor {
					t.Fatalf("part %d below floor %d: %v", i, tt.floor, got)
				}
			}
			if got[0] <= got[len(got)-1] {
				t.Fatalf("expected heavy part to dominate, got %v", got)
			}
		})
	}
}

func TestSplit_PinnedPartsStayAtFloor(t *testing.T) {
	got := Split(150, []float64{9, 7, 8, 1}, 12)
	if got[3] != 12 {
		t.Fatalf("expected pinned tail at floor 12, got %v", got)
	}
}

func TestSplit_ProportionalWhenAboveFloor(t *testing.T) {
	got := Split(100, []float64{1, 3}, 1)
	if got[0] != 25 || got[1] != 75 {
		t.Fatalf("unexpected split: %v", got)
	}
}

func TestSplit_EqualWeightsKeepOrder(t *testing.T) {
	got := Split(100, []float64{2, 2, 2}, 1)
	// Equal remainders: the leftover unit goes to the earliest part.
	if got[0] != 34 || got[1] != 33 || got[2] != 33 {
		t.Fatalf("unexpected split: %v", got)
	}
}

func TestSplit_TooManyParts(t *testing.T) {
	if got := Split(2, []float64{1, 1, 1}, 1); got != nil {
		t.Fatalf("expected nil for infeasible split, got %v", got)
	}
}
