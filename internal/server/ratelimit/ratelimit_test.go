package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(rules ...Rule) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(&Config{Enabled: true, Whitelist: map[string]bool{"10.0.0.9": true}, Rules: rules})
	l.now = clock.now
	return l, clock
}

func TestRule_Matches(t *testing.T) {
	tests := []struct {
		rule   Rule
		path   string
		method string
		want   bool
	}{
		{Rule{Path: "/ask", Method: "POST"}, "/ask", "POST", true},
		{Rule{Path: "/ask", Method: "POST"}, "/ask", "GET", false},
		{Rule{Path: "/ask", Method: "POST"}, "/ask/voice", "POST", false},
		{Rule{Path: "/resume/", Method: "POST"}, "/resume/extras", "POST", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rule.Matches(tt.path, tt.method), "%+v %s %s", tt.rule, tt.method, tt.path)
	}
}

func TestAllow_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(Rule{Path: "/ask", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2})
	defer l.Stop()

	ok, _ := l.Allow("1.2.3.4", "/ask", "POST")
	assert.True(t, ok)
	ok, info := l.Allow("1.2.3.4", "/ask", "POST")
	assert.True(t, ok)
	assert.Equal(t, 0, info.Remaining)

	ok, info = l.Allow("1.2.3.4", "/ask", "POST")
	assert.False(t, ok)
	assert.Equal(t, 60, info.Limit)
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestAllow_Refills(t *testing.T) {
	l, clock := newTestLimiter(Rule{Path: "/ask", Method: "POST", Limit: 60, Window: time.Minute, Burst: 1})
	defer l.Stop()

	ok, _ := l.Allow("1.2.3.4", "/ask", "POST")
	require.True(t, ok)
	ok, _ = l.Allow("1.2.3.4", "/ask", "POST")
	require.False(t, ok)

	clock.advance(time.Second)
	ok, _ = l.Allow("1.2.3.4", "/ask", "POST")
	assert.True(t, ok)
}

func TestAllow_PerClient(t *testing.T) {
	l, _ := newTestLimiter(Rule{Path: "/ask", Method: "POST", Limit: 1, Window: time.Hour})
	defer l.Stop()

	ok, _ := l.Allow("1.1.1.1", "/ask", "POST")
	assert.True(t, ok)
	ok, _ = l.Allow("2.2.2.2", "/ask", "POST")
	assert.True(t, ok)
	ok, _ = l.Allow("1.1.1.1", "/ask", "POST")
	assert.False(t, ok)
}

func TestAllow_UnmatchedAndWhitelisted(t *testing.T) {
	l, _ := newTestLimiter(Rule{Path: "/ask", Method: "POST", Limit: 1, Window: time.Hour})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("1.1.1.1", "/health", "GET")
		assert.True(t, ok)
		ok, _ = l.Allow("10.0.0.9", "/ask", "POST")
		assert.True(t, ok)
	}
}

func TestAllow_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, Rules: GenerationRules(1, time.Hour, 1)})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("1.1.1.1", "/ask", "POST")
		assert.True(t, ok)
	}
}

func TestPrune(t *testing.T) {
	l, clock := newTestLimiter(Rule{Path: "/ask", Method: "POST", Limit: 1, Window: time.Hour})
	defer l.Stop()

	l.Allow("1.1.1.1", "/ask", "POST")
	require.Len(t, l.buckets, 1)

	clock.advance(2 * time.Hour)
	l.prune()
	assert.Empty(t, l.buckets)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_GENERATION_LIMIT", "7")
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, 10.0.0.1")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	require.NotEmpty(t, cfg.Rules)
	assert.Equal(t, 7, cfg.Rules[0].Limit)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	assert.False(t, LoadConfig().Enabled)
}

func TestStop_Idempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, CleanupInterval: time.Hour})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
