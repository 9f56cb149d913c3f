package generator

import (
	"sort"
	"testing"
)

func collect(t *testing.T, g *Generator) []string {
	t.Helper()
	var out []string
	for {
		id, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, id)
	}
}

func TestFullEnumeration(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		alphabet string
		want     int
	}{
		{"single char binary", 1, "AB", 2},
		{"two char binary", 2, "AB", 4},
		{"three char ternary", 3, "ABC", 27},
		{"two char full alphabet", 2, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", 676},
		{"digits", 2, "0123456789", 100},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := New(test.length, test.alphabet, "")
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			if g.Total() != uint64(test.want) {
				t.Errorf("Total() = %d, want %d", g.Total(), test.want)
			}

			ids := collect(t, g)
			if len(ids) != test.want {
				t.Fatalf("Enumerated %d identifiers, want %d", len(ids), test.want)
			}

			seen := make(map[string]bool, len(ids))
			for _, id := range ids {
				if len(id) != test.length {
					t.Errorf("Identifier %q has length %d, want %d", id, len(id), test.length)
				}
				if seen[id] {
					t.Errorf("Duplicate identifier %q", id)
				}
				seen[id] = true
			}
		})
	}
}

func TestEnumerationOrder(t *testing.T) {
	g, err := New(2, "AB", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []string{"AA", "AB", "BA", "BB"}
	got := collect(t, g)

	if len(got) != len(want) {
		t.Fatalf("Enumerated %d identifiers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFirstCharacterVariesSlowest(t *testing.T) {
	g, err := New(3, "ABCD", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ids := collect(t, g)
	if !sort.StringsAreSorted(ids) {
		t.Error("Expected enumeration in lexicographic order for an ordinal alphabet")
	}
}

func TestStartFromYieldsSuffix(t *testing.T) {
	full, err := New(2, "ABC", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	all := collect(t, full)

	offset, err := New(2, "ABC", "BA")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	suffix := collect(t, offset)

	if len(suffix) != 6 {
		t.Fatalf("Enumerated %d identifiers from BA, want 6", len(suffix))
	}
	for i, id := range suffix {
		if id != all[3+i] {
			t.Errorf("Position %d: got %q, want %q", i, id, all[3+i])
		}
	}
}

func TestStartFromSkipCount(t *testing.T) {
	// 676 total minus the 25 identifiers strictly before "AZ"
	g, err := New(2, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "AZ")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if g.Remaining() != 651 {
		t.Errorf("Remaining() = %d, want 651", g.Remaining())
	}

	first, ok := g.Next()
	if !ok || first != "AZ" {
		t.Errorf("First identifier = %q, want AZ", first)
	}
}

func TestStartFromCaseInsensitive(t *testing.T) {
	g, err := New(2, "ABC", "ba")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, ok := g.Next()
	if !ok || first != "BA" {
		t.Errorf("First identifier = %q, want BA", first)
	}
}

func TestStartFromShorterThanLength(t *testing.T) {
	g, err := New(2, "ABC", "B")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// "B" pads to "BA", the earliest identifier with that prefix
	first, ok := g.Next()
	if !ok || first != "BA" {
		t.Errorf("First identifier = %q, want BA", first)
	}
	if g.Remaining() != 5 {
		t.Errorf("Remaining() = %d, want 5 after first Next", g.Remaining())
	}
}

func TestStartFromLongerThanLength(t *testing.T) {
	// "ABB" sorts after "AB", so enumeration starts at "AC"
	g, err := New(2, "ABC", "ABB")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, ok := g.Next()
	if !ok || first != "AC" {
		t.Errorf("First identifier = %q, want AC", first)
	}
}

func TestStartFromBeyondMaxYieldsEmpty(t *testing.T) {
	g, err := New(2, "ABC", "CCC")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, ok := g.Next(); ok {
		t.Error("Expected empty sequence when start offset exceeds the space")
	}
	if g.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", g.Remaining())
	}
}

func TestStartFromInvalidCharacter(t *testing.T) {
	if _, err := New(2, "ABC", "A9"); err == nil {
		t.Error("Expected error for start-from character outside the alphabet")
	}
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		alphabet string
	}{
		{"zero length", 0, "AB"},
		{"negative length", -1, "AB"},
		{"length above max", 9, "AB"},
		{"empty alphabet", 2, ""},
		{"duplicate alphabet chars", 2, "ABA"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.length, test.alphabet, ""); err == nil {
				t.Error("Expected constructor error")
			}
		})
	}
}

func TestRestartable(t *testing.T) {
	first, _ := New(2, "AB", "")
	second, _ := New(2, "AB", "")

	a := collect(t, first)
	b := collect(t, second)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sequences diverge at %d: %q vs %q", i, a[i], b[i])
		}
	}
}
