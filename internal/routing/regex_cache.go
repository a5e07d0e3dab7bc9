package routing

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// regexCacheMaxSize is the maximum number of entries in the regex cache.
const regexCacheMaxSize = 1000

// regexCache holds compiled patterns keyed by source text, so reloads
// that keep most patterns reuse the compiled form.
var regexCache = newRegexCache(regexCacheMaxSize)

func newRegexCache(size int) *lru.Cache[string, *regexp.Regexp] {
	cache, err := lru.NewWithEvict[string, *regexp.Regexp](size, func(string, *regexp.Regexp) {
		getRegexCacheMetrics().cacheEvictions.Inc()
	})
	if err != nil {
		panic(err)
	}
	return cache
}

// compileRegex returns the compiled form of pattern, from cache when
// possible. Compilation errors are not cached.
func compileRegex(pattern string) (*regexp.Regexp, error) {
	metrics := getRegexCacheMetrics()

	if regex, ok := regexCache.Get(pattern); ok {
		metrics.cacheHits.Inc()
		return regex, nil
	}
	metrics.cacheMisses.Inc()

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	// Another goroutine may have added it meanwhile.
	if existing, ok, _ := regexCache.PeekOrAdd(pattern, regex); ok {
		return existing, nil
	}
	metrics.cacheSize.Set(float64(regexCache.Len()))

	return regex, nil
}

// regexCacheLen returns the number of cached patterns.
func regexCacheLen() int {
	return regexCache.Len()
}
