package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache keys embed coordinates at a fixed precision. Six decimal places is
// about 0.11m at the equator, well below any useful search radius, so equal
// points always canonicalize to the same key regardless of how the float64
// would render on its own.
const coordPrecision = 6

// Options configures one named cache.
type Options struct {
	TTL     time.Duration
	MaxSize int
}

// Provider holds a fixed set of named LRU caches, each with its own TTL and
// capacity. Entries are evicted by whichever of TTL expiry or LRU pressure
// triggers first. Safe for concurrent use.
type Provider struct {
	caches map[string]*expirable.LRU[string, any]
}

// NewProvider builds the named caches. Namespaces are fixed at construction;
// GetOrCompute rejects unknown ones.
func NewProvider(namespaces map[string]Options) *Provider {
	caches := make(map[string]*expirable.LRU[string, any], len(namespaces))
	for name, opt := range namespaces {
		caches[name] = expirable.NewLRU[string, any](opt.MaxSize, nil, opt.TTL)
	}
	return &Provider{caches: caches}
}

// GetOrCompute returns the cached value for key in namespace, invoking compute
// and storing its result on a miss. The second return reports a cache hit.
// When compute fails nothing is stored and the error is returned as-is.
func GetOrCompute[T any](p *Provider, namespace, key string, compute func() (T, error)) (T, bool, error) {
	var zero T

	c, ok := p.caches[namespace]
	if !ok {
		return zero, false, fmt.Errorf("cache: unknown namespace %q", namespace)
	}

	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, true, nil
		}
	}

	v, err := compute()
	if err != nil {
		return zero, false, err
	}
	c.Add(key, v)
	return v, false, nil
}

// Key joins canonicalized parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Coord formats a coordinate at fixed precision for key construction.
func Coord(v float64) string {
	return strconv.FormatFloat(v, 'f', coordPrecision, 64)
}
