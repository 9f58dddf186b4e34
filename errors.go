package pwsa

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pwsa/internal/resource"
)

var (
	// ErrInvalidArgument is returned when a search is started with a nil
	// graph or heuristic, or with an invalid option value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceExhausted is returned when the distance table or the
	// frontiers would exceed the configured memory limit.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// ErrVertexOutOfRange indicates a source or destination outside the graph.
//
// It matches ErrInvalidArgument via errors.Is.
type ErrVertexOutOfRange struct {
	Role           string // "source" or "destination"
	Vertex         Vertex
	NumberVertices int
}

func (e *ErrVertexOutOfRange) Error() string {
	return fmt.Sprintf("%s vertex %d out of range [0, %d)", e.Role, e.Vertex, e.NumberVertices)
}

func (e *ErrVertexOutOfRange) Unwrap() error { return ErrInvalidArgument }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrResourceExhausted, err)
	}
	return err
}
