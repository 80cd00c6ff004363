package fuzzy

import "testing"

func TestSetWithZeroRadiusIsJustTheTerm(t *testing.T) {
	f := NewFinder()
	f.UpdateTerms([]string{"hello", "help", "held"})

	got := f.Set(Config{MaxDistance: 0}, "hello")
	if len(got) != 1 || got[0] != (Variant{Word: "hello", Distance: 0}) {
		t.Errorf("Set with zero radius = %#v, want [{hello 0}]", got)
	}
}

func TestSetFindsNearbyKnownTerms(t *testing.T) {
	f := NewFinder()
	f.UpdateTerms([]string{"hello", "help", "hullo", "xyz"})

	got := f.Set(Config{MaxDistance: 1}, "hello")
	foundSelf := false
	foundHullo := false
	for _, v := range got {
		if v.Word == "hello" && v.Distance == 0 {
			foundSelf = true
		}
		if v.Word == "hullo" && v.Distance == 1 {
			foundHullo = true
		}
		if v.Word == "xyz" {
			t.Errorf("unexpected far variant in result: %#v", v)
		}
	}
	if !foundSelf {
		t.Error("expected self at distance 0")
	}
	if !foundHullo {
		t.Error("expected 'hullo' within distance 1")
	}
}

func TestSetRespectsMaxResults(t *testing.T) {
	f := NewFinder()
	f.UpdateTerms([]string{"cat", "bat", "hat", "rat", "mat"})

	got := f.Set(Config{MaxDistance: 1, MaxResults: 2}, "cat")
	// self + at most 2 fuzzy variants
	if len(got) > 3 {
		t.Errorf("expected at most 3 variants (self + 2), got %d: %#v", len(got), got)
	}
}

func TestSetCachesByTermAndDistance(t *testing.T) {
	f := NewFinder()
	f.UpdateTerms([]string{"cat", "bat"})

	first := f.Set(Config{MaxDistance: 1}, "cat")
	second := f.Set(Config{MaxDistance: 1}, "cat")
	if len(first) != len(second) {
		t.Errorf("expected cached result to be stable, got %d vs %d", len(first), len(second))
	}
}

func TestUpdateTermsInvalidatesCache(t *testing.T) {
	f := NewFinder()
	f.UpdateTerms([]string{"cat"})
	_ = f.Set(Config{MaxDistance: 1}, "cat")

	f.UpdateTerms([]string{"cat", "bat"})
	got := f.Set(Config{MaxDistance: 1}, "cat")
	found := false
	for _, v := range got {
		if v.Word == "bat" {
			found = true
		}
	}
	if !found {
		t.Error("expected newly added term 'bat' to be found after UpdateTerms")
	}
}
