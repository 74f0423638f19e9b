package gridprovider

import (
	"strconv"
	"testing"
)

func TestGridSetLookup(t *testing.T) {
	g := New()
	g.Set("a1", "42")

	v, ok := g.Lookup("A1")
	if !ok {
		t.Fatal("expected A1 to be present")
	}
	if v != "42" {
		t.Errorf("Lookup(A1) = %q, want %q", v, "42")
	}
}

func TestGridLookupMissing(t *testing.T) {
	g := New()
	if _, ok := g.Lookup("Z99"); ok {
		t.Error("expected Z99 to be absent")
	}
}

func TestGridFillColumn(t *testing.T) {
	g := New()
	g.FillColumn("B", 1, 5, func(row int) string {
		if row%2 == 0 {
			return "even"
		}
		return "odd"
	})

	for row, want := range map[int]string{1: "odd", 2: "even", 5: "odd"} {
		addr := "B" + strconv.Itoa(row)
		v, ok := g.Lookup(addr)
		if !ok {
			t.Fatalf("expected %s to be set", addr)
		}
		if v != want {
			t.Errorf("Lookup(%s) = %q, want %q", addr, v, want)
		}
	}
}
