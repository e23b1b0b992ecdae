package bubble

import "sync"

// QuoteCycle hands out reaction texts round-robin. The cursor is shared
// across all hands, so simultaneous triggers consume consecutive quotes
// instead of duplicating one.
type QuoteCycle struct {
	mu     sync.Mutex
	quotes []string
	next   int
}

// NewQuoteCycle creates a cycle over the given quotes.
func NewQuoteCycle(quotes []string) *QuoteCycle {
	c := &QuoteCycle{}
	c.SetQuotes(quotes)
	return c
}

// SetQuotes replaces the quote list and rewinds the cursor. The slice
// is copied so later mutation by the caller cannot skew the rotation.
func (c *QuoteCycle) SetQuotes(quotes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.quotes = make([]string, len(quotes))
	copy(c.quotes, quotes)
	c.next = 0
}

// Next returns the next quote in rotation and advances the cursor.
// ok is false when no quotes are loaded.
func (c *QuoteCycle) Next() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.quotes) == 0 {
		return "", false
	}

	q := c.quotes[c.next]
	c.next = (c.next + 1) % len(c.quotes)
	return q, true
}

// Len returns the number of quotes in rotation.
func (c *QuoteCycle) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.quotes)
}

// DefaultQuotes returns the built-in reaction texts used when no
// catalog has been configured.
func DefaultQuotes() []string {
	return []string{
		"Nice!",
		"Great job!",
		"Love it!",
		"You rock!",
		"Keep going!",
	}
}
