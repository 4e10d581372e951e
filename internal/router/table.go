package router

import (
	"fmt"
	"strings"
)

// node is the compiled form of a Route
type node struct {
	pattern   string
	paramName string
	view      View
	entity    string

	index    *node
	literals map[string]*node
	param    *node
}

// Table is an immutable, validated route table. It is safe for concurrent use.
type Table struct {
	root   *node
	routes []RouteInfo
}

// NewTable compiles the given routes as children of "/"
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{}
	root, err := t.compile(Route{Children: routes}, "/", "", nil)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

// MustTable is like NewTable but panics on an invalid declaration
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes lists every routable pattern in declaration order
func (t *Table) Routes() []RouteInfo {
	out := make([]RouteInfo, len(t.routes))
	for i, r := range t.routes {
		r.Params = append([]string(nil), r.Params...)
		out[i] = r
	}
	return out
}

func (t *Table) compile(r Route, pattern, entity string, params []string) (*node, error) {
	if r.Entity != "" {
		entity = r.Entity
	}
	n := &node{
		pattern:  pattern,
		view:     r.View,
		entity:   entity,
		literals: make(map[string]*node),
	}
	if isParam(r.Segment) {
		n.paramName = strings.TrimPrefix(r.Segment, ":")
	}

	if r.View != "" {
		t.routes = append(t.routes, RouteInfo{Pattern: pattern, View: r.View, Entity: entity, Params: params})
	}

	for _, child := range r.Children {
		if child.Index {
			if child.Segment != "" || len(child.Children) > 0 {
				return nil, fmt.Errorf("%w: index route under %q must have no segment or children", ErrInvalidTable, pattern)
			}
			if child.View == "" {
				return nil, fmt.Errorf("%w: index route under %q has no view", ErrInvalidTable, pattern)
			}
			if n.index != nil {
				return nil, fmt.Errorf("%w: more than one index route under %q", ErrInvalidTable, pattern)
			}
			childEntity := entity
			if child.Entity != "" {
				childEntity = child.Entity
			}
			n.index = &node{pattern: pattern, view: child.View, entity: childEntity}
			t.routes = append(t.routes, RouteInfo{Pattern: pattern, View: child.View, Entity: childEntity, Params: params})
			continue
		}

		seg := child.Segment
		switch {
		case seg == "":
			return nil, fmt.Errorf("%w: non-index route under %q has no segment", ErrInvalidTable, pattern)
		case strings.Contains(seg, "/"):
			return nil, fmt.Errorf("%w: segment %q under %q contains a slash", ErrInvalidTable, seg, pattern)
		case len(child.Children) == 0 && child.View == "":
			return nil, fmt.Errorf("%w: leaf route %q renders no view", ErrInvalidTable, joinPattern(pattern, seg))
		}

		childParams := params
		if isParam(seg) {
			name := strings.TrimPrefix(seg, ":")
			if name == "" {
				return nil, fmt.Errorf("%w: unnamed parameter under %q", ErrInvalidTable, pattern)
			}
			if n.param != nil {
				return nil, fmt.Errorf("%w: parameters %q and %q compete under %q", ErrInvalidTable, ":"+n.param.paramName, seg, pattern)
			}
			for _, p := range params {
				if p == name {
					return nil, fmt.Errorf("%w: parameter %q repeated below %q", ErrInvalidTable, name, pattern)
				}
			}
			childParams = append(append([]string(nil), params...), name)
		} else if _, dup := n.literals[strings.ToLower(seg)]; dup {
			return nil, fmt.Errorf("%w: duplicate segment %q under %q", ErrInvalidTable, seg, pattern)
		}

		compiled, err := t.compile(child, joinPattern(pattern, seg), entity, childParams)
		if err != nil {
			return nil, err
		}
		if isParam(seg) {
			n.param = compiled
		} else {
			n.literals[strings.ToLower(seg)] = compiled
		}
	}

	return n, nil
}
