package chart

// Call is one recorded Plotter invocation.
type Call struct {
	Kind   string // histogram, boxplot or heatmap
	Title  string
	Bins   int
	Labels []string
	Sizes  []int
	Matrix [][]float64
}

// Recorder is a Plotter that keeps calls in memory and draws nothing.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) Histogram(title string, values []float64, bins int) error {
	r.Calls = append(r.Calls, Call{Kind: "histogram", Title: title, Bins: bins, Sizes: []int{len(values)}})
	return nil
}

func (r *Recorder) BoxPlot(title string, groups []string, values [][]float64) error {
	sizes := make([]int, len(values))
	for i, v := range values {
		sizes[i] = len(v)
	}
	r.Calls = append(r.Calls, Call{Kind: "boxplot", Title: title, Labels: groups, Sizes: sizes})
	return nil
}

func (r *Recorder) HeatMap(title string, labels []string, matrix [][]float64) error {
	r.Calls = append(r.Calls, Call{Kind: "heatmap", Title: title, Labels: labels, Matrix: matrix})
	return nil
}

// Titles returns the recorded titles in call order.
func (r *Recorder) Titles() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Title
	}
	return out
}
