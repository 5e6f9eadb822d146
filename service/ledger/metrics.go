package ledger

import (
	"defilend/core"

	"github.com/prometheus/client_golang/prometheus"
)

var actionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "defilend",
	Subsystem: "ledger",
	Name:      "actions_total",
	Help:      "Ledger actions by result.",
}, []string{"action", "result"})

func init() {
	prometheus.MustRegister(actionCounter)
}

func observe(action core.ActionType, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if code, ok := err.(core.ErrorCode); ok {
			result = code.String()
		}
	}

	actionCounter.WithLabelValues(action.String(), result).Inc()
}
