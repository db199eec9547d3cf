package grouping

import (
	"sort"
	"testing"
)

func TestCompareNumericRuns(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"a2.jpg", "a10.jpg", -1},
		{"a10.jpg", "a2.jpg", 1},
		{"img2", "img10", -1},
		{"card9.jpg", "card10.jpg", -1},
		{"scan100.png", "scan99.png", 1},
		{"a.jpg", "b.jpg", -1},
		{"a1b2", "a1b10", -1},
		{"photo.jpg", "photo.jpg", 0},
	}
	for _, tc := range cases {
		got := Compare(tc.a, tc.b)
		if sign(got) != tc.want {
			t.Fatalf("Compare(%q, %q) = %d, want sign %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareCaseInsensitiveWithDeterministicTiebreak(t *testing.T) {
	// Case difference alone must still produce a stable total order.
	if Compare("IMG2.jpg", "img2.jpg") == 0 {
		t.Fatal("case variants must not compare equal")
	}
	first := Compare("IMG2.jpg", "img2.jpg")
	for i := 0; i < 10; i++ {
		if Compare("IMG2.jpg", "img2.jpg") != first {
			t.Fatal("comparison must be deterministic across runs")
		}
	}
	// Case-insensitive ordering still groups the variants together.
	if sign(Compare("IMG2.jpg", "img10.jpg")) != -1 {
		t.Fatal("case-insensitive numeric ordering broken")
	}
}

func TestCompareLeadingZeros(t *testing.T) {
	// Equal numeric value, tie broken lexicographically.
	if Compare("a01", "a1") == 0 {
		t.Fatal("a01 and a1 must have a deterministic order")
	}
	if sign(Compare("a001", "a2")) != -1 {
		t.Fatal("numeric value must win over digit count")
	}
}

func TestSortWholeBatch(t *testing.T) {
	files := []string{"card10.jpg", "card2.jpg", "card1.jpg", "back10.jpg", "Card3.jpg"}
	sort.Slice(files, func(i, j int) bool { return Less(files[i], files[j]) })

	want := []string{"back10.jpg", "card1.jpg", "card2.jpg", "Card3.jpg", "card10.jpg"}
	for i, f := range want {
		if files[i] != f {
			t.Fatalf("position %d: got %q, want %q (full: %v)", i, files[i], f, files)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
