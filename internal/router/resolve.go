package router

import (
	"fmt"
	"strings"
)

// Resolve maps an escaped URL path to the view it renders and the parameters it carries.
//
// Literal segments win over the parameter at the same position; the parameter is
// only tried when the literal branch cannot complete. On a miss the returned Match
// has View == ViewNotFound and the error wraps ErrNoRoute.
func (t *Table) Resolve(path string) (Match, error) {
	params := make(map[string]string)
	if n, ok := t.root.match(splitPath(path), params); ok {
		return Match{
			View:    n.view,
			Entity:  n.entity,
			Pattern: n.pattern,
			Params:  params,
		}, nil
	}
	return Match{View: ViewNotFound, Params: map[string]string{}}, fmt.Errorf("%w: %s", ErrNoRoute, path)
}

func (n *node) match(segments []string, params map[string]string) (*node, bool) {
	if len(segments) == 0 {
		if n.index != nil {
			return n.index, true
		}
		if n.view != "" {
			return n, true
		}
		return nil, false
	}

	head, rest := segments[0], segments[1:]
	if child, ok := n.literals[strings.ToLower(head)]; ok {
		if m, ok := child.match(rest, params); ok {
			return m, true
		}
	}
	if n.param != nil {
		if m, ok := n.param.match(rest, params); ok {
			params[n.param.paramName] = head
			return m, true
		}
	}
	return nil, false
}
