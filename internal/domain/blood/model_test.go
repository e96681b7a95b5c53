package blood

import "testing"

func TestUrgencyRank(t *testing.T) {
	order := []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("%s (rank %d) should sort before %s (rank %d)",
				order[i-1], order[i-1].Rank(), order[i], order[i].Rank())
		}
	}
}

func TestParseUrgency(t *testing.T) {
	if _, ok := ParseUrgency("CRITICAL"); !ok {
		t.Error("CRITICAL should parse")
	}
	for _, bad := range []string{"critical", "URGENT", "", "EXTREME"} {
		if _, ok := ParseUrgency(bad); ok {
			t.Errorf("%q should not parse", bad)
		}
	}
}
