// Package metrics defines self-contained, named computations.
//
// A metric takes a typed input, produces a typed output, and carries the
// metadata reports and the MCP tool listing need to describe it.
package metrics

import "slices"

// Metric is a named computation from In to Out.
type Metric[In, Out any] interface {
	// Name returns the machine-readable identifier (kebab-case, unique).
	Name() string

	// DisplayName returns a human-readable name for reports.
	DisplayName() string

	// Description explains what the value measures and how to read it.
	Description() string

	// Type returns the output shape: "grouped" or "per_title".
	Type() string

	// Compute calculates the output. It must be pure.
	Compute(input In) Out
}

// Output shapes.
const (
	TypeGrouped  = "grouped"
	TypePerTitle = "per_title"
)

// MetricMeta holds the common metadata for a metric.
// Embed it in metric implementations to satisfy the metadata methods.
type MetricMeta struct {
	MetricName        string
	MetricDisplayName string
	MetricDescription string
	MetricType        string
}

// Name returns the machine-readable identifier.
func (m MetricMeta) Name() string { return m.MetricName }

// DisplayName returns a human-readable name.
func (m MetricMeta) DisplayName() string { return m.MetricDisplayName }

// Description returns the metric documentation.
func (m MetricMeta) Description() string { return m.MetricDescription }

// Type returns the output shape.
func (m MetricMeta) Type() string { return m.MetricType }

// Registry holds metrics that share an input and output type, in
// registration order.
type Registry[In, Out any] struct {
	order   []string
	metrics map[string]Metric[In, Out]
}

// NewRegistry creates an empty registry.
func NewRegistry[In, Out any]() *Registry[In, Out] {
	return &Registry[In, Out]{metrics: make(map[string]Metric[In, Out])}
}

// Register adds m, replacing any metric with the same name.
func (r *Registry[In, Out]) Register(m Metric[In, Out]) {
	if _, exists := r.metrics[m.Name()]; !exists {
		r.order = append(r.order, m.Name())
	}

	r.metrics[m.Name()] = m
}

// Get retrieves a metric by name.
func (r *Registry[In, Out]) Get(name string) (Metric[In, Out], bool) {
	m, ok := r.metrics[name]

	return m, ok
}

// Names returns registered names in registration order.
func (r *Registry[In, Out]) Names() []string {
	return slices.Clone(r.order)
}

// All returns registered metrics in registration order.
func (r *Registry[In, Out]) All() []Metric[In, Out] {
	out := make([]Metric[In, Out], 0, len(r.order))

	for _, name := range r.order {
		out = append(out, r.metrics[name])
	}

	return out
}
