package routes

// Metrics summarises the checks of a route list.
type Metrics struct {
	Total      int
	Successful int
	Failed     int
	Pending    int

	// AverageResponseMs averages over routes with a response time.
	// Nil when no route has one.
	AverageResponseMs *float64
}

// Summarize computes Metrics for rs.
func Summarize(rs []Route) Metrics {
	m := Metrics{Total: len(rs)}
	var sum float64
	var timed int
	for _, r := range rs {
		switch r.Status {
		case StatusSuccess:
			m.Successful++
		case StatusError:
			m.Failed++
		default:
			m.Pending++
		}
		if r.ResponseTimeMs != nil {
			sum += float64(*r.ResponseTimeMs)
			timed++
		}
	}
	if timed > 0 {
		avg := sum / float64(timed)
		m.AverageResponseMs = &avg
	}
	return m
}
