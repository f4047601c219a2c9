package metricas

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "api_comissao"

// Metricas agrupa os coletores do serviço.
type Metricas struct {
	registry     *prometheus.Registry
	liquidacoes  *prometheus.CounterVec
	duracaoHTTP  *prometheus.HistogramVec
	eventosFalha prometheus.Counter
}

// New registra os coletores num registry próprio (mais os de processo e Go).
func New() *Metricas {
	reg := prometheus.NewRegistry()
	m := &Metricas{
		registry: reg,
		liquidacoes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "liquidacoes_total",
			Help:      "Liquidações de comissão calculadas, por sinal da margem.",
		}, []string{"margem", "operacao"}),
		duracaoHTTP: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP por rota.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"metodo", "rota", "status"}),
		eventosFalha: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eventos_falha_total",
			Help:      "Eventos de venda que não puderam ser publicados.",
		}),
	}
	reg.MustRegister(
		m.liquidacoes,
		m.duracaoHTTP,
		m.eventosFalha,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegistrarLiquidacao conta uma liquidação; operacao é "simulacao" ou "registro".
func (m *Metricas) RegistrarLiquidacao(operacao string, margemNegativa bool) {
	margem := "positiva"
	if margemNegativa {
		margem = "negativa"
	}
	m.liquidacoes.WithLabelValues(margem, operacao).Inc()
}

func (m *Metricas) RegistrarFalhaEvento() {
	m.eventosFalha.Inc()
}

// Handler expõe /metrics.
func (m *Metricas) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware mede a duração usando o template da rota do mux (evita um label por ID).
func (m *Metricas) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		rota := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				rota = tpl
			}
		}
		m.duracaoHTTP.
			WithLabelValues(r.Method, rota, strconv.Itoa(rec.status)).
			Observe(time.Since(inicio).Seconds())
	})
}
