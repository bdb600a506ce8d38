package memory

import (
	"testing"

	"testgenz-result-service/internal/app"
)

func TestAttemptStoreLifecycle(t *testing.T) {
	store := NewAttemptStore()

	store.Put(app.NewAttempt("a1", "u1", "kepo-starter-test", 20))
	if _, ok := store.Get("a1"); !ok {
		t.Fatalf("expected attempt present")
	}

	store.Delete("a1")
	if _, ok := store.Get("a1"); ok {
		t.Fatalf("expected attempt removed")
	}
}
