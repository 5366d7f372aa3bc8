package plane

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'odeplot.plane'
func tracer() tracing.Trace {
	return tracing.Select("odeplot.plane")
}
