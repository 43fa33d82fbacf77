// Package classify turns campaign briefs into research subjects using
// ordered keyword rules.
package classify

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/adscout/internal/model"
)

//go:embed rules.yaml
var defaultRules []byte

// Rules is the classifier rule set.
type Rules struct {
	Types           []TypeRule        `yaml:"types"`
	DefaultType     model.SubjectType `yaml:"default_type"`
	Categories      []CategoryRule    `yaml:"categories"`
	DefaultCategory string            `yaml:"default_category"`
}

// TypeRule maps keywords to a subject type.
type TypeRule struct {
	Type     model.SubjectType `yaml:"type"`
	Keywords []string          `yaml:"keywords"`
}

// CategoryRule maps keywords to a market category.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// ParseRules decodes and validates a YAML rule set.
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrap(err, "classify: parse rules")
	}
	if r.DefaultType == "" {
		r.DefaultType = model.SubjectProduct
	}
	if !r.DefaultType.Valid() {
		return nil, eris.Errorf("classify: invalid default_type %q", r.DefaultType)
	}
	for _, tr := range r.Types {
		if !tr.Type.Valid() {
			return nil, eris.Errorf("classify: invalid rule type %q", tr.Type)
		}
	}
	if r.DefaultCategory == "" {
		return nil, eris.New("classify: default_category is required")
	}
	return &r, nil
}

// LoadRules reads a rule set from a YAML file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read rules %s", path)
	}
	return ParseRules(data)
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *Rules {
	r, err := ParseRules(defaultRules)
	if err != nil {
		panic(err)
	}
	return r
}

// Classifier assigns subject types and categories to briefs.
type Classifier struct {
	rules *Rules
}

// New creates a Classifier. A nil rule set uses DefaultRules.
func New(rules *Rules) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify builds a research subject from a brief. Explicit ad_type and
// category on the brief take precedence over keyword inference.
func (c *Classifier) Classify(b model.Brief) model.Subject {
	typ := b.AdType
	if !typ.Valid() {
		typ = c.InferType(b.ShortDescription)
	}
	category := strings.TrimSpace(b.Category)
	if category == "" {
		category = c.InferCategory(b.ShortDescription)
	}
	return model.NewSubject(typ, b.Product, b.ShortDescription, category, b.Price, b.Competitors, b.KeyMessages)
}

// InferType returns the subject type implied by a description.
func (c *Classifier) InferType(description string) model.SubjectType {
	text := fold(description)
	for _, r := range c.rules.Types {
		if containsAny(text, r.Keywords) {
			return r.Type
		}
	}
	return c.rules.DefaultType
}

// InferCategory returns the market category implied by a description.
func (c *Classifier) InferCategory(description string) string {
	text := fold(description)
	for _, r := range c.rules.Categories {
		if containsAny(text, r.Keywords) {
			return r.Category
		}
	}
	return c.rules.DefaultCategory
}

// fold case-folds s. Casers carry state, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, fold(k)) {
			return true
		}
	}
	return false
}
