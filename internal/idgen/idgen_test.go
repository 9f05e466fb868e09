package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewProductID(t *testing.T) {
	id, err := NewProductID()
	if err != nil {
		t.Fatalf("NewProductID() error: %v", err)
	}
	if !strings.HasPrefix(id, ProductPrefix) {
		t.Errorf("NewProductID() = %q, want prefix %q", id, ProductPrefix)
	}
	wantLen := len(ProductPrefix) + Length
	if len(id) != wantLen {
		t.Errorf("NewProductID() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
}

func TestNewFarmID(t *testing.T) {
	id, err := NewFarmID()
	if err != nil {
		t.Fatalf("NewFarmID() error: %v", err)
	}
	if !strings.HasPrefix(id, FarmPrefix) {
		t.Errorf("NewFarmID() = %q, want prefix %q", id, FarmPrefix)
	}
}

func TestGenerate_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(ProductPrefix) + `[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := NewProductID()
		if err != nil {
			t.Fatalf("NewProductID() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("NewProductID() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := NewProductID()
		if err != nil {
			t.Fatalf("NewProductID() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
