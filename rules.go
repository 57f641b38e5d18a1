package matcha

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Rule files give grammars a declarative, storable form: an ordered list
// of named rules plus an entry rule naming the root. Each rule body is
// one node spec, with exactly one key per node naming the variant:
//
//	rules:
//	  - name: digit
//	    pattern:
//	      between: {lo: "0", hi: "9"}
//	  - name: number
//	    pattern:
//	      then:
//	        - ref: digit
//	        - star: {ref: digit}
//	entry: number
//
// Rules may reference each other (and themselves) in any order; every
// rule is registered as a stored definition before the entry pattern is
// linked. When entry is omitted the last rule is the entry.

type ruleSpec struct {
	Name    string   `yaml:"name"`
	Pattern nodeSpec `yaml:"pattern"`
}

type rulesFile struct {
	Rules []ruleSpec `yaml:"rules"`
	Entry string     `yaml:"entry"`
}

type nodeSpec struct {
	Literal  *string     `yaml:"literal"`
	Fold     *string     `yaml:"fold"`
	Between  *rangeSpec  `yaml:"between"`
	Then     []nodeSpec  `yaml:"then"`
	Or       []nodeSpec  `yaml:"or"`
	Not      *nodeSpec   `yaml:"not"`
	Star     *nodeSpec   `yaml:"star"`
	Repeat   *repeatSpec `yaml:"repeat"`
	Optional *nodeSpec   `yaml:"optional"`
	Store    *storeSpec  `yaml:"store"`
	Ref      *string     `yaml:"ref"`
	Again    *nodeSpec   `yaml:"again"`
}

type rangeSpec struct {
	Lo string `yaml:"lo"`
	Hi string `yaml:"hi"`
}

type repeatSpec struct {
	Count int      `yaml:"count"`
	Of    nodeSpec `yaml:"of"`
}

type storeSpec struct {
	Name string   `yaml:"name"`
	Of   nodeSpec `yaml:"of"`
}

// LoadRules reads a YAML rule file and links it into a Pattern.
func LoadRules(path string) (*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRules(data)
}

// ParseRules links a YAML rule document into a Pattern.
func ParseRules(data []byte) (*Pattern, error) {
	return ParseRulesWithConfig(data, Config{})
}

// ParseRulesWithConfig is ParseRules with explicit matching limits.
func ParseRulesWithConfig(data []byte, cfg Config) (*Pattern, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("matcha: parsing rules: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("matcha: rule file defines no rules")
	}

	registry := make(map[string]Node, len(file.Rules))
	for _, rule := range file.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("matcha: rule without a name")
		}
		body, err := rule.Pattern.build()
		if err != nil {
			return nil, fmt.Errorf("matcha: rule %q: %w", rule.Name, err)
		}
		if _, exists := registry[rule.Name]; !exists {
			registry[rule.Name] = Store(rule.Name, body)
		}
	}

	entry := file.Entry
	if entry == "" {
		entry = file.Rules[len(file.Rules)-1].Name
	}
	root, ok := registry[entry]
	if !ok {
		return nil, fmt.Errorf("%w: entry %q", ErrUnresolvedReference, entry)
	}
	return compile(root, registry, cfg)
}

// build translates one node spec into a pattern node via the ordinary
// constructors, so rule files get the same structural checks as code.
func (s nodeSpec) build() (Node, error) {
	if n := s.keyCount(); n != 1 {
		return nil, fmt.Errorf("node spec must set exactly one of literal/fold/between/then/or/not/star/repeat/optional/store/ref/again, got %d", n)
	}

	switch {
	case s.Literal != nil:
		return Literal(*s.Literal), nil
	case s.Fold != nil:
		return LiteralFold(*s.Fold), nil
	case s.Between != nil:
		lo, err := singleRune(s.Between.Lo)
		if err != nil {
			return nil, fmt.Errorf("between lo: %w", err)
		}
		hi, err := singleRune(s.Between.Hi)
		if err != nil {
			return nil, fmt.Errorf("between hi: %w", err)
		}
		return Between(lo, hi)
	case s.Then != nil:
		children, err := buildAll(s.Then)
		if err != nil {
			return nil, err
		}
		return Then(children...)
	case s.Or != nil:
		children, err := buildAll(s.Or)
		if err != nil {
			return nil, err
		}
		return Or(children...)
	case s.Not != nil:
		child, err := s.Not.build()
		if err != nil {
			return nil, err
		}
		return Not(child), nil
	case s.Star != nil:
		child, err := s.Star.build()
		if err != nil {
			return nil, err
		}
		return Star(child), nil
	case s.Repeat != nil:
		child, err := s.Repeat.Of.build()
		if err != nil {
			return nil, err
		}
		return Repeat(child, s.Repeat.Count)
	case s.Optional != nil:
		child, err := s.Optional.build()
		if err != nil {
			return nil, err
		}
		return Optional(child), nil
	case s.Store != nil:
		if s.Store.Name == "" {
			return nil, fmt.Errorf("store without a name")
		}
		child, err := s.Store.Of.build()
		if err != nil {
			return nil, err
		}
		return Store(s.Store.Name, child), nil
	case s.Ref != nil:
		return Ref(*s.Ref), nil
	default: // s.Again != nil
		child, err := s.Again.build()
		if err != nil {
			return nil, err
		}
		return Again(child), nil
	}
}

func (s nodeSpec) keyCount() int {
	n := 0
	for _, set := range []bool{
		s.Literal != nil,
		s.Fold != nil,
		s.Between != nil,
		s.Then != nil,
		s.Or != nil,
		s.Not != nil,
		s.Star != nil,
		s.Repeat != nil,
		s.Optional != nil,
		s.Store != nil,
		s.Ref != nil,
		s.Again != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func buildAll(specs []nodeSpec) ([]Node, error) {
	nodes := make([]Node, len(specs))
	for i, s := range specs {
		n, err := s.build()
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func singleRune(s string) (rune, error) {
	r, w := utf8.DecodeRuneInString(s)
	if w == 0 || w != len(s) || (r == utf8.RuneError && w == 1) {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	return r, nil
}
