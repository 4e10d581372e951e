package router

import (
	"errors"
	"net/url"
	"strings"
)

// View identifies the page a route renders
type View string

const (
	ViewHome       View = "home"
	ViewLogin      View = "login"
	ViewUserList   View = "user_list"
	ViewUserDetail View = "user_detail"
	ViewNewAdmin   View = "new_admin"
	ViewNotFound   View = "not_found"
)

// Entity labels carried by the user routes
const (
	EntityAdmin    = "admin"
	EntityDriver   = "driver"
	EntityCustomer = "customer"
)

var (
	// ErrNoRoute is returned by Resolve when no route matches the path
	ErrNoRoute = errors.New("no route matched")
	// ErrInvalidTable is returned by NewTable when the declaration breaks a table rule
	ErrInvalidTable = errors.New("invalid route table")
)

// Route declares one node of the nested route table.
//
// Segment is a literal ("admin") or a parameter (":adminId"). Index routes have no
// segment and render when the path ends exactly at their parent. Entity is inherited
// by children that leave it empty.
type Route struct {
	Segment  string
	Index    bool
	View     View
	Entity   string
	Children []Route
}

// Match is the outcome of resolving a path
type Match struct {
	View    View
	Entity  string
	Pattern string
	Params  map[string]string
}

// Param returns the named path parameter, or "" when absent
func (m Match) Param(name string) string {
	return m.Params[name]
}

// Found reports whether the match points at a real view
func (m Match) Found() bool {
	return m.View != "" && m.View != ViewNotFound
}

// RouteInfo is a flattened, printable view of one routable pattern
type RouteInfo struct {
	Pattern string
	View    View
	Entity  string
	Params  []string
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, ":")
}

// splitPath breaks an escaped URL path into its non-empty segments, unescaping each
// one so an encoded slash stays inside its segment
func splitPath(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	raw := strings.Split(path, "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		if u, err := url.PathUnescape(s); err == nil {
			s = u
		}
		segments = append(segments, s)
	}
	return segments
}

func joinPattern(parent, segment string) string {
	if parent == "/" {
		return "/" + segment
	}
	return parent + "/" + segment
}
