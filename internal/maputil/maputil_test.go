package maputil

import (
	"sync"
	"testing"
)

func TestPutIfAbsentAndPop(t *testing.T) {
	var mu sync.Mutex
	items := map[string]int{}

	if !PutIfAbsent(&mu, items, "a", 1) {
		t.Fatal("first PutIfAbsent should store")
	}
	if PutIfAbsent(&mu, items, "a", 2) {
		t.Fatal("second PutIfAbsent should not store")
	}
	value, ok := Pop(&mu, items, "a")
	if !ok || value != 1 {
		t.Fatalf("Pop() = %d, %v, want 1, true", value, ok)
	}
	if _, ok := Pop(&mu, items, "a"); ok {
		t.Fatal("Pop() after removal should report false")
	}
}
