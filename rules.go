package turndown

import "strings"

// Filter selects the elements a rule applies to. Filters are only consulted
// for element nodes and must not mutate the node.
type Filter interface {
	Match(n *Node) bool
}

// TagName matches elements with this tag, case-insensitively.
type TagName string

// TagNames matches elements with any of these tags, case-insensitively.
type TagNames []string

// Predicate matches elements for which the function returns true.
type Predicate func(n *Node) bool

// Compile-time interface checks.
var (
	_ Filter = TagName("")
	_ Filter = TagNames(nil)
	_ Filter = Predicate(nil)
)

func (t TagName) Match(n *Node) bool {
	return n.Type == ElementNode && strings.EqualFold(n.Tag, string(t))
}

func (t TagNames) Match(n *Node) bool {
	return n.Is(t...)
}

func (p Predicate) Match(n *Node) bool {
	return p(n)
}

// ReplacementFunc produces the Markdown for a matched element. content is the
// Markdown already rendered from the element's children.
type ReplacementFunc func(content string, n *Node, opts Options) (string, error)

// Rule pairs a filter with its replacement.
type Rule struct {
	Name        string
	Filter      Filter
	Replacement ReplacementFunc
}

// Plugin registers a batch of rules on a Service.
type Plugin func(s *Service)

type matchKind int

const (
	matchNone matchKind = iota
	matchRemove
	matchKeep
	matchRule
)

type match struct {
	kind matchKind
	rule Rule
}

// registry holds the user-configurable rules of a Service. Custom rules keep
// insertion order; re-adding a name replaces the rule in place.
type registry struct {
	rules  []Rule
	index  map[string]int
	keep   []Filter
	remove []Filter
}

func (r *registry) add(rule Rule) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[rule.Name]; ok {
		r.rules[i] = rule
		return
	}
	r.index[rule.Name] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// match resolves the registry entry for an element: remove filters first,
// then keep filters, then custom rules in insertion order.
func (r *registry) match(n *Node) match {
	if n.Type != ElementNode {
		return match{}
	}
	for _, f := range r.remove {
		if f.Match(n) {
			return match{kind: matchRemove}
		}
	}
	for _, f := range r.keep {
		if f.Match(n) {
			return match{kind: matchKeep}
		}
	}
	for _, rule := range r.rules {
		if rule.Filter.Match(n) {
			return match{kind: matchRule, rule: rule}
		}
	}
	return match{}
}
