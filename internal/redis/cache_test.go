package redis

import (
	"testing"

	"taxidash/internal/domain"
)

func TestRequestHash(t *testing.T) {
	a := domain.DefaultViewRequest()
	b := domain.DefaultViewRequest()

	if RequestHash(a) != RequestHash(b) {
		t.Error("expected equal requests to share a hash")
	}

	b.Page.PageNumber = 2
	if RequestHash(a) == RequestHash(b) {
		t.Error("expected a different page to change the hash")
	}

	b = domain.DefaultViewRequest()
	b.Search = "cash"
	if RequestHash(a) == RequestHash(b) {
		t.Error("expected a different search term to change the hash")
	}
}

func TestNewViewCache_DefaultTTL(t *testing.T) {
	cache := NewViewCache(nil, 0)

	if cache.ttl != DefaultViewCacheTTL {
		t.Errorf("expected default ttl, got %v", cache.ttl)
	}
}

func TestViewKey(t *testing.T) {
	req := domain.DefaultViewRequest()

	if ViewKey(1, req) == ViewKey(2, req) {
		t.Error("expected the dataset version to change the key")
	}
	if ViewKey(1, req) != ViewKey(1, domain.DefaultViewRequest()) {
		t.Error("expected equal requests under one version to share a key")
	}
}
