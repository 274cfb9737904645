package bparse

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzpuzpuz/xsync"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/defs"
)

// Cache keeps parsed selectors and matchers by their source expressions
//
// Entries are only added, never removed; invalid expressions are not cached. A Cache is safe for concurrent use.
type Cache struct {
	logger       logger.Logger
	options      []Option
	selectors    *xsync.MapOf[bmatch.TagSelector]
	matchers     *xsync.MapOf[*bmatch.Matcher]
	hitCounter   prometheus.Counter
	missCounter  prometheus.Counter
	errorCounter prometheus.Counter
}

// NewCache creates a Cache. The options apply to all matcher expressions parsed through it.
func NewCache(parentLogger logger.Logger, metricFactory *base.MetricFactory, options ...Option) *Cache {
	return &Cache{
		logger:       parentLogger.WithField(defs.LabelComponent, "ExpressionCache"),
		options:      options,
		selectors:    xsync.NewMapOf[bmatch.TagSelector](),
		matchers:     xsync.NewMapOf[*bmatch.Matcher](),
		hitCounter:   metricFactory.AddOrGetCounter("expression_cache_hits_total", "Numbers of expressions found in cache", nil, nil),
		missCounter:  metricFactory.AddOrGetCounter("expression_cache_misses_total", "Numbers of expressions parsed and added to cache", nil, nil),
		errorCounter: metricFactory.AddOrGetCounter("expression_syntax_errors_total", "Numbers of invalid expressions", nil, nil),
	}
}

// TagSelector gets or parses a tag selector expression
func (c *Cache) TagSelector(text string) (bmatch.TagSelector, error) {
	if selector, found := c.selectors.Load(text); found {
		c.hitCounter.Inc()
		return selector, nil
	}
	selector, err := ParseTagSelector(text)
	if err != nil {
		c.errorCounter.Inc()
		c.logger.Debugf("invalid selector '%s': %s", text, err)
		return bmatch.TagSelector{}, err
	}
	c.missCounter.Inc()
	actual, loaded := c.selectors.LoadOrStore(text, selector)
	if !loaded {
		c.logger.Debugf("cached selector '%s' as %s", text, selector)
	}
	return actual, nil
}

// Matcher gets or parses a matcher expression
func (c *Cache) Matcher(text string) (*bmatch.Matcher, error) {
	if m, found := c.matchers.Load(text); found {
		c.hitCounter.Inc()
		return m, nil
	}
	m, err := ParseMatcher(text, c.options...)
	if err != nil {
		c.errorCounter.Inc()
		c.logger.Debugf("invalid matcher '%s': %s", text, err)
		return nil, err
	}
	c.missCounter.Inc()
	actual, loaded := c.matchers.LoadOrStore(text, m)
	if !loaded {
		c.logger.Debugf("cached matcher '%s' as %s", text, m)
	}
	return actual, nil
}

// Len returns the numbers of cached selectors and matchers
func (c *Cache) Len() (int, int) {
	numSelectors := 0
	c.selectors.Range(func(string, bmatch.TagSelector) bool {
		numSelectors++
		return true
	})
	numMatchers := 0
	c.matchers.Range(func(string, *bmatch.Matcher) bool {
		numMatchers++
		return true
	})
	return numSelectors, numMatchers
}
