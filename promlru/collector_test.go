package promlru

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	lru "github.com/bpowers/strict-lru"
)

func TestCollector(t *testing.T) {
	cache, err := lru.New[string, int](2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)
	cache.Get("a")
	cache.Get("c")

	c := NewCollector("test", "users", cache)

	if n := testutil.CollectAndCount(c); n != 5 {
		t.Fatalf("bad metric count: %d", n)
	}

	const expected = `
# HELP test_cache_capacity Maximum number of entries the cache holds
# TYPE test_cache_capacity gauge
test_cache_capacity{cache="users"} 2
# HELP test_cache_entries Number of entries currently cached
# TYPE test_cache_entries gauge
test_cache_entries{cache="users"} 2
# HELP test_cache_evictions_total Total number of entries evicted to respect the capacity
# TYPE test_cache_evictions_total counter
test_cache_evictions_total{cache="users"} 1
# HELP test_cache_hits_total Total number of lookups that found their key
# TYPE test_cache_hits_total counter
test_cache_hits_total{cache="users"} 1
# HELP test_cache_misses_total Total number of lookups that missed
# TYPE test_cache_misses_total counter
test_cache_misses_total{cache="users"} 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestCollector_Register(t *testing.T) {
	first, err := lru.New[int, int](4)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	second, err := lru.New[string, string](8)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector("app", "first", first)); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if err := reg.Register(NewCollector("app", "second", second)); err != nil {
		t.Fatalf("register second: %v", err)
	}

	second.Put("k", "v")
	const expected = `
# HELP app_cache_entries Number of entries currently cached
# TYPE app_cache_entries gauge
app_cache_entries{cache="first"} 0
app_cache_entries{cache="second"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "app_cache_entries"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
