// Package svg renders the inline progress bars and completion chart of
// the scorecard dashboard.
package svg

// ProgressOpts customises the progress bar renderer.
type ProgressOpts struct {
	Title      string
	FillColor  string
	TrackColor string
	Radius     float64
}

// CompletionOpts customises the completion chart renderer.
type CompletionOpts struct {
	Title       string
	Description string
	BarColor    string
	OverColor   string
	AxisColor   string
	GridColor   string
	TargetColor string
	Padding     float64
	TickCount   int
}

// Defaults for the scorecard charts.
const (
	DefaultWidth          = 480
	DefaultHeight         = 200
	DefaultProgressWidth  = 320
	DefaultProgressHeight = 12
	DefaultPadding        = 24.0
	DefaultTicks          = 5
)
