package rarity

import (
	"testing"

	"divistash/internal/filter"
	"divistash/internal/store"
)

var testThresholds = Thresholds{Top: 100, High: 10, Mid: 2}

func TestFromChaos(t *testing.T) {
	tests := []struct {
		value float64
		want  filter.Rarity
	}{
		{5000, filter.RarityTop},
		{100, filter.RarityTop},
		{99.9, filter.RarityHigh},
		{10, filter.RarityHigh},
		{5, filter.RarityMid},
		{2, filter.RarityMid},
		{1.9, filter.RarityCommon},
		{0, filter.RarityCommon},
	}

	for _, tt := range tests {
		if got := FromChaos(tt.value, testThresholds); got != tt.want {
			t.Errorf("FromChaos(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestReconcileFilterWins(t *testing.T) {
	filterRarities := map[string]filter.Rarity{
		"The Doctor": filter.RarityTop,
		"The Hermit": filter.RarityCommon,
	}
	prices := []store.CardPrice{
		// Price signal disagrees with the filter; filter wins.
		{Card: "The Hermit", ChaosValue: 500},
		// Known only from prices.
		{Card: "The Nurse", ChaosValue: 50},
	}

	merged := Reconcile(filterRarities, prices, testThresholds)

	if len(merged) != 3 {
		t.Fatalf("got %d cards, want 3: %v", len(merged), merged)
	}
	if merged["The Hermit"] != filter.RarityCommon {
		t.Errorf("The Hermit = %d, filter rarity must win", merged["The Hermit"])
	}
	if merged["The Nurse"] != filter.RarityHigh {
		t.Errorf("The Nurse = %d, want price-derived %d", merged["The Nurse"], filter.RarityHigh)
	}
	if merged["The Doctor"] != filter.RarityTop {
		t.Errorf("The Doctor = %d, want %d", merged["The Doctor"], filter.RarityTop)
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	merged := Reconcile(nil, nil, testThresholds)
	if merged == nil {
		t.Fatal("Reconcile returned nil map")
	}
	if len(merged) != 0 {
		t.Errorf("got %d cards from empty inputs", len(merged))
	}
}
