// Package metrics define las métricas Prometheus del dominio de admisión.
// Viven en un paquete standalone para evitar ciclos de import entre los
// services y las capas HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portero_logins_total",
		Help: "Logins procesados por outcome",
	}, []string{"outcome"}) // outcome: ok|forbidden|error

	WhitelistInsertsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portero_whitelist_inserts_total",
		Help: "Altas de whitelist por resultado",
	}, []string{"result"}) // result: created|noop|error
)

// RegisterAdmission registra las métricas de admisión en el registry dado
// (default si nil). Tolera doble registro.
func RegisterAdmission(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{LoginsTotal, WhitelistInsertsTotal} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
