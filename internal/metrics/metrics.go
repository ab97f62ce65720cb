// Package metrics counts lifecycle transitions and authorization denials.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the tenancy counters. A nil *Recorder records nothing.
type Recorder struct {
	transitions *prometheus.CounterVec
	denied      *prometheus.CounterVec
}

// New creates the counters and registers them with reg when reg is not nil.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenancy",
			Name:      "transitions_total",
			Help:      "Committed lifecycle transitions by entity and transition.",
		}, []string{"entity", "transition"}),
		denied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenancy",
			Name:      "denied_total",
			Help:      "Operations rejected by the access guard.",
		}, []string{"entity", "operation"}),
	}
	if reg != nil {
		reg.MustRegister(r.transitions, r.denied)
	}
	return r
}

// Transition counts a committed state change such as lease/create.
func (r *Recorder) Transition(entity, transition string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(entity, transition).Inc()
}

// Denied counts an authorization rejection.
func (r *Recorder) Denied(entity, operation string) {
	if r == nil {
		return
	}
	r.denied.WithLabelValues(entity, operation).Inc()
}

// TransitionCounter exposes the counter for one label pair.
func (r *Recorder) TransitionCounter(entity, transition string) prometheus.Counter {
	return r.transitions.WithLabelValues(entity, transition)
}

// DeniedCounter exposes the denial counter for one label pair.
func (r *Recorder) DeniedCounter(entity, operation string) prometheus.Counter {
	return r.denied.WithLabelValues(entity, operation)
}
