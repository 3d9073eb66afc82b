package schema

import (
	"fmt"
	"strings"

	"github.com/getmockd/fixturegen/pkg/generator"
)

// dependencies lists the entities e needs built before itself: its parent and
// the targets of its entity and reference fields. A reference to e itself is
// not a dependency.
func dependencies(e *Entity) []string {
	var deps []string
	if e.Extends != "" {
		deps = append(deps, e.Extends)
	}
	for _, f := range e.Fields {
		if f.Entity == "" {
			continue
		}
		switch f.Type {
		case string(generator.KindEntity):
			deps = append(deps, f.Entity)
		case string(generator.KindReference):
			if f.Entity != e.Name {
				deps = append(deps, f.Entity)
			}
		}
	}
	return deps
}

// buildOrder returns entity names so that every entity follows its
// dependencies, keeping declaration order otherwise. It returns the first
// cycle found instead when there is one. Unknown names are ignored.
func buildOrder(doc *Document) (order []string, cycle []string) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var stack []string

	var visit func(name string) bool
	visit = func(name string) bool {
		e, ok := doc.Entity(name)
		if !ok {
			return true
		}
		switch state[name] {
		case done:
			return true
		case visiting:
			for i, n := range stack {
				if n == name {
					cycle = append(append([]string(nil), stack[i:]...), name)
					break
				}
			}
			return false
		}

		state[name] = visiting
		stack = append(stack, name)
		for _, dep := range dependencies(e) {
			if !visit(dep) {
				return false
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		order = append(order, name)
		return true
	}

	for _, e := range doc.Entities {
		if !visit(e.Name) {
			return nil, cycle
		}
	}
	return order, nil
}

func findCycle(doc *Document) []string {
	_, cycle := buildOrder(doc)
	return cycle
}

// SortEntities reorders doc's entities so that every entity follows its
// parent and the entities its fields refer to. It fails with the cycle when
// there is no such order.
func SortEntities(doc *Document) error {
	order, cycle := buildOrder(doc)
	if cycle != nil {
		return fmt.Errorf("%w: dependency cycle: %s", ErrInvalidDocument, strings.Join(cycle, " -> "))
	}
	sorted := make([]Entity, 0, len(doc.Entities))
	for _, name := range order {
		e, _ := doc.Entity(name)
		sorted = append(sorted, *e)
	}
	doc.Entities = sorted
	return nil
}
