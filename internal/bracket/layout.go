package bracket

// Dimensions are the fixed sizes used to place match boxes.
type Dimensions struct {
	Margin          float64 `json:"margin"`
	MatchWidth      float64 `json:"match_width"`
	MatchHeight     float64 `json:"match_height"`
	ColumnSpacing   float64 `json:"column_spacing"`
	VerticalSpacing float64 `json:"vertical_spacing"`
}

// DefaultDimensions returns the sizes used when none are configured.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Margin:          20,
		MatchWidth:      220,
		MatchHeight:     80,
		ColumnSpacing:   60,
		VerticalSpacing: 20,
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenterY is the vertical middle of the box.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// Layout holds the computed positions. Matches is indexed like the rounds it was built from.
type Layout struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rounds  []Box   `json:"rounds"`
	Matches [][]Box `json:"matches"`
}

// ComputeLayout positions every match. Each round is centered on its own
// against canvasHeight; a non-positive canvasHeight is replaced by the
// tallest round plus two margins.
func ComputeLayout(rounds [][]Match, canvasHeight float64, d Dimensions) Layout {
	if canvasHeight <= 0 {
		tallest := 0.0
		for _, round := range rounds {
			if h := roundHeight(len(round), d); h > tallest {
				tallest = h
			}
		}
		canvasHeight = tallest + 2*d.Margin
	}

	l := Layout{
		Height:  canvasHeight,
		Rounds:  make([]Box, len(rounds)),
		Matches: make([][]Box, len(rounds)),
	}
	for r, round := range rounds {
		x := d.Margin + float64(r)*(d.MatchWidth+d.ColumnSpacing)
		total := roundHeight(len(round), d)
		yStart := (canvasHeight - total) / 2

		boxes := make([]Box, len(round))
		for i := range round {
			boxes[i] = Box{
				X:      x,
				Y:      yStart + float64(i)*(d.MatchHeight+d.VerticalSpacing),
				Width:  d.MatchWidth,
				Height: d.MatchHeight,
			}
		}
		l.Matches[r] = boxes
		l.Rounds[r] = Box{X: x, Y: yStart, Width: d.MatchWidth, Height: total}
	}
	if n := len(rounds); n > 0 {
		l.Width = 2*d.Margin + float64(n)*d.MatchWidth + float64(n-1)*d.ColumnSpacing
	}
	return l
}

func roundHeight(n int, d Dimensions) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*d.MatchHeight + float64(n-1)*d.VerticalSpacing
}

// EdgePath returns the orthogonal connector from the right-center of from to
// the left-center of to: horizontal, vertical, horizontal.
func EdgePath(from, to Box) [4]Point {
	startX := from.X + from.Width
	midX := startX + (to.X-startX)/2
	return [4]Point{
		{X: startX, Y: from.CenterY()},
		{X: midX, Y: from.CenterY()},
		{X: midX, Y: to.CenterY()},
		{X: to.X, Y: to.CenterY()},
	}
}
