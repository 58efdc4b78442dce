package distribution

import (
	"encoding/json"
	"testing"

	"github.com/crimson-sun/bloomq/internal/model"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		total int
		want  [6]int
	}{
		{0, [6]int{1, 1, 1, 1, 1, 1}},
		{-4, [6]int{1, 1, 1, 1, 1, 1}},
		{1, [6]int{1, 1, 1, 1, 1, 1}},
		// 0.5 rounds away from zero.
		{5, [6]int{1, 1, 2, 1, 1, 1}},
		{10, [6]int{1, 2, 3, 2, 2, 1}},
		{15, [6]int{2, 3, 5, 2, 2, 2}},
		{20, [6]int{2, 4, 6, 3, 3, 2}},
		{100, [6]int{10, 20, 30, 15, 15, 10}},
	}

	for _, tt := range tests {
		d := Plan(tt.total)
		if len(d) != 6 {
			t.Fatalf("Plan(%d) has %d entries, want 6", tt.total, len(d))
		}
		for i, l := range model.Levels() {
			if d[l] != tt.want[i] {
				t.Errorf("Plan(%d)[%s] = %d, want %d", tt.total, l, d[l], tt.want[i])
			}
		}
	}
}

func TestPlanNearTotal(t *testing.T) {
	for total := 0; total <= 60; total++ {
		d := Plan(total)
		for l, c := range d {
			if c < 1 {
				t.Errorf("Plan(%d)[%s] = %d, want >= 1", total, l, c)
			}
		}
		if total >= 10 {
			if diff := d.Total() - total; diff < -2 || diff > 2 {
				t.Errorf("Plan(%d).Total() = %d, drift %d", total, d.Total(), diff)
			}
		}
	}
}

func TestSharesSumToOne(t *testing.T) {
	var sum float64
	for _, l := range model.Levels() {
		sum += Share(l)
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Errorf("shares sum to %f", sum)
	}
	if Share(model.Level(42)) != 0 {
		t.Error("invalid level should have zero share")
	}
}

func TestGroups(t *testing.T) {
	low, high := Plan(100).Groups()
	if low != 60 || high != 40 {
		t.Errorf("Groups() = %d/%d, want 60/40", low, high)
	}
}

func TestDistributionJSON(t *testing.T) {
	b, err := json.Marshal(Plan(10))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got["application"] != 3 || got["creating"] != 1 {
		t.Errorf("unexpected JSON %s", b)
	}
}
