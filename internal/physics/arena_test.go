package physics

import "testing"

func TestArenaStaleHandle(t *testing.T) {
	var a arena[string]

	first := a.insert("first")
	if first == 0 {
		t.Fatal("handle should never be 0")
	}

	if v, ok := a.get(first); !ok || v != "first" {
		t.Errorf("Expected 'first', got '%s' (ok=%v)", v, ok)
	}

	a.remove(first)
	second := a.insert("second")

	if uint32(first) != uint32(second) {
		t.Errorf("Expected slot %d to be reused, got %d", uint32(first), uint32(second))
	}
	if _, ok := a.get(first); ok {
		t.Error("Removed handle should not resolve after slot reuse")
	}
	if v, ok := a.get(second); !ok || v != "second" {
		t.Errorf("Expected 'second', got '%s' (ok=%v)", v, ok)
	}
}

func TestArenaLenAndIteration(t *testing.T) {
	var a arena[int]
	h1 := a.insert(1)
	a.insert(2)
	a.insert(3)
	a.remove(h1)

	if a.len() != 2 {
		t.Errorf("Expected 2 live entries, got %d", a.len())
	}

	sum := 0
	for _, v := range a.all() {
		sum += v
	}
	if sum != 5 {
		t.Errorf("Expected sum 5, got %d", sum)
	}

	if _, ok := a.remove(h1); ok {
		t.Error("Double remove should fail")
	}
	if _, ok := a.get(0); ok {
		t.Error("Zero handle should never resolve")
	}
}
