// Package workmate derives the sphere of colleagues a driver is connected
// to through shared trips.
package workmate

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/fleetops/wrangler/core/storage"
)

// Resolver answers workmate queries over the trip log.
type Resolver struct {
	store storage.Store
}

// New returns a resolver over the given store.
func New(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// Sphere returns every driver reachable from eid through chains of shared
// trips, ascending and excluding eid itself. Non-drivers and drivers with
// no trips get an empty sphere.
func (r *Resolver) Sphere(ctx context.Context, eid int) ([]int, error) {
	isDriver, err := r.store.IsDriver(ctx, eid)
	if err != nil {
		return nil, fmt.Errorf("workmate sphere: driver check %d: %w", eid, err)
	}
	if !isDriver {
		return []int{}, nil
	}

	trips, err := r.store.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("workmate sphere: trips: %w", err)
	}

	g := simple.NewUndirectedGraph()
	for _, t := range trips {
		if t.DriverHigh == t.DriverLow {
			continue
		}
		if g.HasEdgeBetween(int64(t.DriverHigh), int64(t.DriverLow)) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(t.DriverHigh), T: simple.Node(t.DriverLow)})
	}
	if g.Node(int64(eid)) == nil {
		return []int{}, nil
	}

	sphere := []int{}
	bfs := traverse.BreadthFirst{}
	bfs.Walk(g, g.Node(int64(eid)), func(n graph.Node, _ int) bool {
		if id := int(n.ID()); id != eid {
			sphere = append(sphere, id)
		}
		return false
	})
	sort.Ints(sphere)
	return sphere, nil
}
