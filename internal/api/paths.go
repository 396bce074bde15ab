package api

import (
	"fmt"
	"strings"
)

// Operation names a logical resource action. Resource path tables map
// an operation plus a set of identifiers to a URL template.
type Operation string

const (
	OpFind   Operation = "find"
	OpAll    Operation = "all"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpCount  Operation = "count"
	OpCancel Operation = "cancel"
)

// PathSpec is one way of addressing a resource operation: the HTTP
// method, the operation name, the identifiers the template needs, and
// the template itself with "{name}" placeholders. len(IDs) always
// equals the number of distinct placeholders in Template.
type PathSpec struct {
	Method    string
	Operation Operation
	IDs       []string
	Template  string
}

// ResolvePath selects the most specific PathSpec in table matching the
// operation and the identifiers the caller has in hand.
//
// Candidates are the entries whose operation matches and whose required
// identifiers are all present in ids (a subset test; extra ids are
// fine). Among candidates the one requiring the most identifiers wins,
// so a variant reachable both under its product and standalone is
// addressed through the product when the product id is available. Ties
// go to the first-declared entry.
func ResolvePath(table []PathSpec, op Operation, ids map[string]any) (*PathSpec, bool) {
	var best *PathSpec
	for i := range table {
		spec := &table[i]
		if spec.Operation != op {
			continue
		}
		if !hasAllIDs(ids, spec.IDs) {
			continue
		}
		if best == nil || len(spec.IDs) > len(best.IDs) {
			best = spec
		}
	}
	return best, best != nil
}

func hasAllIDs(ids map[string]any, required []string) bool {
	for _, name := range required {
		if _, ok := ids[name]; !ok {
			return false
		}
	}
	return true
}

// BuildPath interpolates ids into the template. A placeholder with no
// matching id is left verbatim, which keeps partially-resolved
// templates inspectable instead of failing the substitution.
func BuildPath(template string, ids map[string]any) string {
	result := template
	for name, value := range ids {
		result = strings.ReplaceAll(result, "{"+name+"}", idString(value))
	}
	return result
}

func idString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// resolveRequest resolves and interpolates in one step, returning a
// PathError naming the operation and available identifiers when the
// table has no matching entry.
func resolveRequest(resource string, table []PathSpec, op Operation, ids map[string]any) (method, path string, err error) {
	spec, ok := ResolvePath(table, op, ids)
	if !ok {
		return "", "", &PathError{Resource: resource, Operation: op, IDs: idNames(ids)}
	}
	return spec.Method, BuildPath(spec.Template, ids), nil
}

func idNames(ids map[string]any) []string {
	names := make([]string, 0, len(ids))
	for name := range ids {
		names = append(names, name)
	}
	return names
}
