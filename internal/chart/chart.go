// Package chart defines renderer-agnostic chart specifications. The
// pipelines emit these; drawing them is the presentation layer's job.
package chart

// Kind selects the chart shape.
type Kind string

const (
	Bar  Kind = "bar"
	HBar Kind = "hbar"
	Pie  Kind = "pie"
	Line Kind = "line"
)

// Spec is one chart: parallel label/value series plus axis titles.
type Spec struct {
	Kind   Kind      `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}
