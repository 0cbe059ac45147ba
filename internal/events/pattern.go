package events

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Pattern selects event names for OnPattern.
type Pattern interface {
	Match(name Name) bool
	String() string
}

// Any matches every event name.
var Any Pattern = anyPattern{}

type anyPattern struct{}

func (anyPattern) Match(Name) bool { return true }
func (anyPattern) String() string  { return "*" }

type prefixPattern string

// Prefix matches names starting with p, e.g. Prefix("modal:").
func Prefix(p string) Pattern {
	return prefixPattern(p)
}

func (p prefixPattern) Match(name Name) bool {
	return strings.HasPrefix(string(name), string(p))
}

func (p prefixPattern) String() string {
	return string(p) + "*"
}

type globPattern string

// Glob matches names using path.Match syntax, e.g. Glob("*FormErrors:change").
// A malformed glob matches nothing.
func Glob(g string) Pattern {
	return globPattern(g)
}

func (g globPattern) Match(name Name) bool {
	ok, err := path.Match(string(g), string(name))
	return err == nil && ok
}

func (g globPattern) String() string {
	return string(g)
}

type regexpPattern struct {
	re *regexp.Regexp
}

// Regexp compiles expr into a pattern.
func Regexp(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid event pattern %q: %w", expr, err)
	}
	return regexpPattern{re: re}, nil
}

// MustRegexp is like Regexp but panics if expr does not compile.
func MustRegexp(expr string) Pattern {
	p, err := Regexp(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (r regexpPattern) Match(name Name) bool {
	return r.re.MatchString(string(name))
}

func (r regexpPattern) String() string {
	return r.re.String()
}
