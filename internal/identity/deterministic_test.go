package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("go-blog:post:hello-world")
	second := UUID("go-blog:post:hello-world")
	if first != second {
		t.Fatalf("expected stable UUID, got %s and %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatal("expected non-nil UUID")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected uuid.Nil for blank key, got %s", got)
	}
}

func TestPostUUIDNormalizesSlug(t *testing.T) {
	if PostUUID("Hello-World") != PostUUID("  hello-world ") {
		t.Fatal("expected slug casing and whitespace to be normalized")
	}
	if PostUUID("hello-world") == PostUUID("other-post") {
		t.Fatal("expected distinct slugs to yield distinct identifiers")
	}
}
