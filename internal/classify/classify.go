// Package classify decides whether a file should be treated as a presentation source.
package classify

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ambiguousExts are generic text-document extensions that need content inspection.
var ambiguousExts = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
	".mkd":      {},
	".mkdn":     {},
}

var (
	frontMatterStart = regexp.MustCompile(`^\s*---`)
	slideSeparator   = regexp.MustCompile(`\n(?:---|-{4,})\n|\n%[ \t]*\n`)
)

const presenterField = "presenter:"

// Classifier matches file names against glob patterns and, for markdown-like
// patterns, inspects the content for presentation markers.
type Classifier struct {
	patterns []string
	logger   zerolog.Logger
}

// New returns a classifier for the given glob patterns. Invalid patterns are dropped.
func New(patterns []string) *Classifier {
	c := &Classifier{logger: log.With().Str("component", "classify").Logger()}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := path.Match(p, ""); err != nil {
			c.logger.Warn().Str("pattern", p).Err(err).Msg("ignoring malformed file pattern")
			continue
		}
		c.patterns = append(c.patterns, p)
	}
	return c
}

// IsPresentationFile reports whether file looks like a presentation. It never
// fails: unreadable files are reported as not presentations.
func (c *Classifier) IsPresentationFile(file string) bool {
	base := filepath.Base(file)
	needsContent := false
	for _, p := range c.patterns {
		ok, _ := path.Match(p, base)
		if !ok {
			continue
		}
		if !ambiguous(p) {
			return true
		}
		needsContent = true
	}
	if !needsContent {
		return false
	}
	return c.contentLooksLikeSlides(file)
}

func (c *Classifier) contentLooksLikeSlides(file string) bool {
	f, err := os.Open(file)
	if err != nil {
		c.logger.Debug().Str("path", file).Err(err).Msg("cannot open candidate")
		return false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.logger.Debug().Str("path", file).Err(err).Msg("cannot read candidate")
		return false
	}
	return LooksLikeSlides(string(data))
}

// LooksLikeSlides applies the content heuristics: a leading metadata block with
// a presenter field, or at least one slide separator line.
func LooksLikeSlides(content string) bool {
	// The presenter field may sit anywhere once the content opens with a block marker.
	if frontMatterStart.MatchString(content) && strings.Contains(content, presenterField) {
		return true
	}
	return slideSeparator.MatchString(content)
}

func ambiguous(pattern string) bool {
	_, ok := ambiguousExts[strings.ToLower(path.Ext(pattern))]
	return ok
}
