package pwsa_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/pwsa"
	"github.com/hupe1980/pwsa/graph"
	"github.com/hupe1980/pwsa/snapshot"
)

func exampleGraph() *graph.CSR {
	return graph.NewBuilder(4).
		AddEdge(0, 1, 4).
		AddEdge(0, 2, 1).
		AddEdge(2, 1, 2).
		AddEdge(1, 3, 1).
		AddEdge(2, 3, 5).
		MustBuild()
}

// Example_search runs a parallel search over a small directed graph.
func Example_search() {
	res, err := pwsa.Search(context.Background(), exampleGraph(), graph.Zero, 0, 3)
	if err != nil {
		log.Fatal(err)
	}

	d, ok := res.DestinationDistance()
	fmt.Println("distance to 3:", d, ok)
	fmt.Println("reached:", res.Reached().GetCardinality())
	// Output:
	// distance to 3: 4 true
	// reached: 4
}

// Example_grid stops as soon as the far corner of a grid is finalized.
func Example_grid() {
	gr := graph.Grid{Rows: 3, Cols: 3}
	g := gr.Build(nil) // unit weights
	dst := gr.Vertex(2, 2)

	res, err := pwsa.Search(context.Background(), g, gr.Manhattan(dst, 1), 0, dst,
		pwsa.WithStopAtDestination(),
		pwsa.WithWorkers(4),
	)
	if err != nil {
		log.Fatal(err)
	}

	d, _ := res.DestinationDistance()
	fmt.Println("corner distance:", d)
	// Output: corner distance: 4
}

// Example_sequential computes exact shortest distances with the baseline.
func Example_sequential() {
	res, err := pwsa.SearchSequential(context.Background(), exampleGraph(), graph.Zero, 0, 0,
		pwsa.WithPolicy(pwsa.PolicyUniform),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Distances())
	// Output: [0 3 1 4]
}

// Example_snapshot stores the distances of a result and reads them back.
func Example_snapshot() {
	res, err := pwsa.Search(context.Background(), exampleGraph(), graph.Zero, 2, 2)
	if err != nil {
		log.Fatal(err)
	}

	data, err := snapshot.Encode(res.Distances(), snapshot.CompressionZSTD)
	if err != nil {
		log.Fatal(err)
	}
	dist, err := snapshot.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(dist)
	// Output: [-1 2 0 3]
}
