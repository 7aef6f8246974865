package callout

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/open-cli-collective/zendown/pkg/pandoc"
)

// Policy decides what happens to labels that look like callouts but are not recognized.
type Policy string

const (
	PolicyIgnore Policy = "ignore"
	PolicyWarn   Policy = "warn"
	PolicyError  Policy = "error"
)

// ErrUnknownCallouts is reported under PolicyError when lookalike labels were seen.
var ErrUnknownCallouts = errors.New("unrecognized callout labels")

// ValidPolicies returns the accepted policy names.
func ValidPolicies() []string {
	return []string{string(PolicyIgnore), string(PolicyWarn), string(PolicyError)}
}

// ParsePolicy parses a policy name. The empty string selects PolicyWarn.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyWarn, nil
	case PolicyIgnore, PolicyWarn, PolicyError:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("invalid unknown_callouts policy %q (valid: %s)", s, strings.Join(ValidPolicies(), ", "))
	}
}

// Options configures a callout filter.
type Options struct {
	Policy Policy
	Logger *log.Logger
}

// Report collects what a filter did to a document.
type Report struct {
	mu      sync.Mutex
	policy  Policy
	counts  map[Kind]int
	unknown []string
}

// Count returns how many callouts of the kind were wrapped.
func (r *Report) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[k]
}

// Wrapped returns the total number of wrapped callouts.
func (r *Report) Wrapped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}

// Unknown returns the distinct lookalike labels seen, sorted.
func (r *Report) Unknown() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool, len(r.unknown))
	var out []string
	for _, l := range r.unknown {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

// Err returns ErrUnknownCallouts when the policy is PolicyError and lookalike labels were seen.
func (r *Report) Err() error {
	if r.policy != PolicyError {
		return nil
	}
	unknown := r.Unknown()
	if len(unknown) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCallouts, strings.Join(unknown, ", "))
}

// NewFilter returns a pandoc filter that wraps every callout div, and the report it fills in.
func NewFilter(opts Options) (pandoc.Filter, *Report) {
	policy := opts.Policy
	if policy == "" {
		policy = PolicyWarn
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	report := &Report{policy: policy, counts: make(map[Kind]int)}

	handler := func(e pandoc.Element) (pandoc.Element, error) {
		div, err := pandoc.DecodeDiv(e)
		if err != nil {
			return e, err
		}

		label, _ := div.Attr.FirstClass()
		kind, ok := Classify(div)
		if !ok {
			if IsLookalike(label) {
				report.mu.Lock()
				report.unknown = append(report.unknown, label)
				report.mu.Unlock()
				if policy != PolicyIgnore {
					logger.Warn("unrecognized callout label", "label", label, "id", div.Attr.ID)
				}
			}
			return e, nil
		}

		report.mu.Lock()
		report.counts[kind]++
		report.mu.Unlock()
		logger.Debug("wrapping callout", "kind", kind, "id", div.Attr.ID, "blocks", len(div.Blocks))

		return Wrap(div).Element(), nil
	}

	return pandoc.Filter{pandoc.TypeDiv: handler}, report
}

// latexWriters are the pandoc output formats whose writers keep latex raw blocks.
var latexWriters = map[string]bool{
	"latex":  true,
	"beamer": true,
	"pdf":    true,
}

// KeepsMarkers reports whether a pandoc output format renders the latex markers.
// Other writers drop them silently.
func KeepsMarkers(format string) bool {
	base := format
	if i := strings.IndexAny(base, "+-"); i >= 0 {
		base = base[:i]
	}
	return latexWriters[base]
}
