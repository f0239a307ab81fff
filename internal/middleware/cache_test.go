package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/theananta/certificate-studio/internal/config"
)

func testCacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		KeyStrategy: "route_query",
		Prefix:      "verify",
	}
}

func TestCacheKeyStable(t *testing.T) {
	cfg := testCacheCfg()
	a := CacheKeyFor(cfg, "/verify", "id=CERT-AAAA1111")
	b := CacheKeyFor(cfg, "/verify", "id=CERT-AAAA1111")
	if a != b {
		t.Fatalf("same request produced different keys: %q vs %q", a, b)
	}
	if c := CacheKeyFor(cfg, "/verify", "id=CERT-BBBB2222"); c == a {
		t.Fatal("different ids must not share a cache key")
	}
	if c := CacheKeyFor(cfg, "/verify/image", "id=CERT-AAAA1111"); c == a {
		t.Fatal("different routes must not share a cache key")
	}
}

func TestCacheKeyIgnoresQueryForRouteStrategy(t *testing.T) {
	cfg := testCacheCfg()
	cfg.KeyStrategy = "route"
	a := CacheKeyFor(cfg, "/verify", "id=one")
	b := CacheKeyFor(cfg, "/verify", "id=two")
	if a != b {
		t.Fatal("route strategy should ignore the query string")
	}
}

func TestInvalidateVerifyDropsIDAndEmailEntries(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer rdb.Close()

	cfg := testCacheCfg()
	certID := "CERT-AAAA1111"
	email := "jane@example.com"

	// Entries as the cache middleware would have stored them: keyed by
	// the raw request query, id lookups and email lookups alike.
	stored := []string{
		CacheKeyFor(cfg, "/verify", "id="+certID),
		CacheKeyFor(cfg, "/verify/image", "id="+certID),
		CacheKeyFor(cfg, "/verify/pdf", "id="+certID),
		CacheKeyFor(cfg, "/verify", "email=jane%40example.com"),
		CacheKeyFor(cfg, "/verify", "email="+email),
	}
	kept := CacheKeyFor(cfg, "/verify", "id=CERT-BBBB2222")
	ctx := context.Background()
	for _, k := range append(stored, kept) {
		if err := rdb.Set(ctx, k, "cached", 0).Err(); err != nil {
			t.Fatalf("seed %q: %v", k, err)
		}
	}

	InvalidateVerify(ctx, rdb, cfg, certID, email)

	for _, k := range stored {
		if err := rdb.Get(ctx, k).Err(); err != redis.Nil {
			t.Fatalf("key %q should be gone, got %v", k, err)
		}
	}
	if err := rdb.Get(ctx, kept).Err(); err != nil {
		t.Fatalf("unrelated certificate's entry should survive: %v", err)
	}
}

func TestInvalidateVerifyWithoutEmail(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer rdb.Close()

	cfg := testCacheCfg()
	ctx := context.Background()
	idKey := CacheKeyFor(cfg, "/verify", "id=CERT-AAAA1111")
	if err := rdb.Set(ctx, idKey, "cached", 0).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Draft revocations have no holder; only the id entries go.
	InvalidateVerify(ctx, rdb, cfg, "CERT-AAAA1111", "")
	if err := rdb.Get(ctx, idKey).Err(); err != redis.Nil {
		t.Fatalf("id entry should be gone, got %v", err)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Thing": {"a", "b"}}
	body := []byte(`{"certificate_id":"CERT-AAAA1111"}`)

	enc, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(enc)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
	if len(gotHdr["X-Thing"]) != 2 {
		t.Fatalf("multi-value header lost: %v", gotHdr["X-Thing"])
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	if _, _, _, ok := decodePayload(nil); ok {
		t.Fatal("nil payload should not decode")
	}
	if _, _, _, ok := decodePayload([]byte{1, 2, 3}); ok {
		t.Fatal("short payload should not decode")
	}
	// Header length pointing past the end of the buffer.
	bad := []byte{0, 0, 0, 200, 0, 0, 0, 99}
	if _, _, _, ok := decodePayload(bad); ok {
		t.Fatal("truncated payload should not decode")
	}
}
