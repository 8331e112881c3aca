package graph

import "sort"

type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Children maps every edge source to its targets, in edge order.
func Children(edges []Edge) map[string][]string {
	children := make(map[string][]string)
	for _, e := range edges {
		children[e.Source] = append(children[e.Source], e.Target)
	}
	return children
}

// DescendantsOf returns every node reachable from id by following edges from
// source to target. id itself is never included, even when a cycle leads
// back to it. The edge slice is only read.
func DescendantsOf(edges []Edge, id string) IDSet {
	return descendants(Children(edges), id)
}

func descendants(children map[string][]string, id string) IDSet {
	result := make(IDSet)
	stack := append([]string(nil), children[id]...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if next == id || result.Has(next) {
			continue
		}
		result.Add(next)
		stack = append(stack, children[next]...)
	}
	return result
}

// WouldCycle reports whether adding source→target closes a directed cycle.
func WouldCycle(edges []Edge, source, target string) bool {
	if source == target {
		return true
	}
	return DescendantsOf(edges, target).Has(source)
}
