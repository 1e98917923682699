// Package pattern implements the built-in offline explanation model.
// The model is a deterministic rule table: each rule pairs a lexical shape
// with an explanation template, and generation is a first-match lookup over
// the unit's first significant line. The rule table is the model asset; it
// can be loaded from a local JSON file or fall back to the embedded default.
package pattern

import (
	"context"
	"encoding/json"
	"os"
	"regexp"
	"strings"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure Model implements explainer.Model.
var _ explainer.Model = (*Model)(nil)

// defaultMaxInputTokens applies when the asset does not set a limit.
const defaultMaxInputTokens = 512

// rule is a compiled asset rule.
type rule struct {
	name       string
	langs      map[explainer.Language]bool
	re         *regexp.Regexp
	template   string
	confidence float64
}

// Model is one loaded local model instance. It is immutable after
// construction, but the Engine still serializes access per the Model
// contract.
type Model struct {
	rules    []rule
	maxInput int
}

// New compiles a rule set into a usable model.
// An empty or uncompilable rule set returns ESTARTUP.
func New(rs *RuleSet) (*Model, error) {
	if rs == nil || len(rs.Rules) == 0 {
		return nil, explainer.Errorf(explainer.ESTARTUP, "model asset contains no rules")
	}

	m := &Model{maxInput: rs.MaxInputTokens}
	if m.maxInput <= 0 {
		m.maxInput = defaultMaxInputTokens
	}

	for _, r := range rs.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, explainer.Errorf(explainer.ESTARTUP, "model asset rule %q has invalid pattern: %v", r.Name, err)
		}

		var langs map[explainer.Language]bool
		if len(r.Languages) > 0 {
			langs = make(map[explainer.Language]bool, len(r.Languages))
			for _, l := range r.Languages {
				langs[l] = true
			}
		}

		m.rules = append(m.rules, rule{
			name:       r.Name,
			langs:      langs,
			re:         re,
			template:   r.Template,
			confidence: r.Confidence,
		})
	}

	return m, nil
}

// Default returns a model built from the embedded rule set.
func Default() *Model {
	m, err := New(DefaultRuleSet())
	if err != nil {
		// The embedded rule set is validated by tests; failing to compile
		// it is a programming error.
		panic(err)
	}
	return m
}

// Load reads a model asset from a local path. A missing or corrupt asset
// returns ESTARTUP; the caller treats that as fatal at process startup.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, explainer.Errorf(explainer.ESTARTUP, "model asset %q: %v", path, err)
	}

	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, explainer.Errorf(explainer.ESTARTUP, "model asset %q is corrupt: %v", path, err)
	}

	return New(&rs)
}

// MaxInputTokens returns the model's fixed input limit.
func (m *Model) MaxInputTokens() int {
	return m.maxInput
}

// Generate decodes an explanation for the prompt's code. The first rule
// whose shape matches the code's first significant line wins. A prompt no
// rule matches returns EINFERENCE; the pipeline downgrades that single
// unit instead of aborting.
func (m *Model) Generate(ctx context.Context, p explainer.Prompt) (*explainer.Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line := firstSignificantLine(p.Code)
	if line == "" {
		return nil, explainer.Errorf(explainer.EINFERENCE, "prompt contains no code")
	}

	for _, r := range m.rules {
		if r.langs != nil && !r.langs[p.Language] {
			continue
		}
		idx := r.re.FindStringSubmatchIndex(line)
		if idx == nil {
			continue
		}

		text := string(r.re.ExpandString(nil, r.template, line, idx))
		return &explainer.Generation{
			Text:        text,
			Confidence:  r.confidence,
			Suggestions: Suggest(line, p.Language),
		}, nil
	}

	return nil, explainer.Errorf(explainer.EINFERENCE, "model produced no output")
}

// firstSignificantLine returns the first non-blank line, trimmed.
func firstSignificantLine(code string) string {
	for _, line := range strings.Split(code, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
