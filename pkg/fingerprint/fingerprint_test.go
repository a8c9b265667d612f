package fingerprint

import (
	"errors"
	"hash/maphash"
	"testing"
)

func TestSeededAgreesWithItself(t *testing.T) {
	seed := maphash.MakeSeed()
	fp1 := Seeded[string](seed)
	fp2 := Seeded[string](seed)

	for _, key := range []string{"", "a", "key-1", "key-2", "同じ"} {
		a, err := fp1(key)
		if err != nil {
			t.Fatalf("fp1(%q) error: %v", key, err)
		}
		b, err := fp2(key)
		if err != nil {
			t.Fatalf("fp2(%q) error: %v", key, err)
		}
		if a != b {
			t.Errorf("fingerprint(%q) differs across Funcs with same seed: %d vs %d", key, a, b)
		}
	}
}

func TestSeededSpreadsKeys(t *testing.T) {
	fp := New[int]()

	seen := make(map[uint64]int)
	for i := 0; i < 1000; i++ {
		sum, err := fp(i)
		if err != nil {
			t.Fatalf("fp(%d) error: %v", i, err)
		}
		seen[sum]++
	}

	// 1000 distinct ints colliding down to fewer than 990 sums would
	// indicate a broken hash, not bad luck.
	if len(seen) < 990 {
		t.Errorf("1000 keys produced only %d distinct fingerprints", len(seen))
	}
}

func TestSeededNotHashable(t *testing.T) {
	fp := New[any]()

	if _, err := fp([]int{1, 2, 3}); !errors.Is(err, ErrNotHashable) {
		t.Errorf("fp(slice) error = %v, want ErrNotHashable", err)
	}
	if _, err := fp(map[string]int{}); !errors.Is(err, ErrNotHashable) {
		t.Errorf("fp(map) error = %v, want ErrNotHashable", err)
	}

	// Comparable dynamic values still hash fine.
	if _, err := fp("plain string"); err != nil {
		t.Errorf("fp(string) error = %v, want nil", err)
	}
	if _, err := fp(42); err != nil {
		t.Errorf("fp(int) error = %v, want nil", err)
	}
}

func TestStringDeterministic(t *testing.T) {
	fp := String()

	a, _ := fp("bucket")
	b, _ := fp("bucket")
	if a != b {
		t.Errorf("String() not deterministic: %d vs %d", a, b)
	}

	c, _ := fp("other")
	if a == c {
		t.Errorf("distinct keys hashed to the same sum %d", a)
	}
}

func TestConstant(t *testing.T) {
	fp := Constant[string](7)

	for _, key := range []string{"a", "b", "c"} {
		sum, err := fp(key)
		if err != nil {
			t.Fatalf("Constant(%q) error: %v", key, err)
		}
		if sum != 7 {
			t.Errorf("Constant(%q) = %d, want 7", key, sum)
		}
	}
}
