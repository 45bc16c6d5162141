package assistant

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter reports how many tokens a piece of text costs against the
// input ceiling.
type TokenCounter interface {
	Count(text string) int
}

// TiktokenCounter counts with the cl100k_base encoding. The encoding is
// loaded lazily; when it cannot be loaded the counter degrades to a
// whitespace word count so admission control keeps working offline.
type TiktokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
}

func NewTiktokenCounter() *TiktokenCounter {
	return &TiktokenCounter{}
}

func (c *TiktokenCounter) Count(text string) int {
	c.once.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			slog.Warn("Token encoding unavailable, falling back to word count", "encoding", "cl100k_base", "error", err)
			return
		}
		c.enc = enc
	})

	if c.enc == nil {
		return len(strings.Fields(text))
	}
	return len(c.enc.Encode(text, nil, nil))
}
