package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/api-comissao/internal/config"
	"github.com/KromaEnergia/api-comissao/internal/eventos"
	"github.com/KromaEnergia/api-comissao/internal/icms"
	"github.com/KromaEnergia/api-comissao/internal/logger"
	"github.com/KromaEnergia/api-comissao/internal/metricas"
	"github.com/KromaEnergia/api-comissao/internal/organizacao"
	"github.com/KromaEnergia/api-comissao/internal/parcela"
	"github.com/KromaEnergia/api-comissao/internal/tabelapreco"
	"github.com/KromaEnergia/api-comissao/internal/utils/db"
	"github.com/KromaEnergia/api-comissao/internal/venda"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	database, err := db.GetDB(cfg.Database)
	if err != nil {
		logger.Fatal("Erro ao conectar no banco", zap.Error(err))
	}

	// AutoMigrate para todos os modelos
	if err := migrar(database); err != nil {
		logger.Fatal("Erro no AutoMigrate", zap.Error(err))
	}

	// Tabela de preços (com cache Redis opcional)
	var tabelaRepo tabelapreco.Repositorio = tabelapreco.NewRepository(database)
	if cfg.Redis.Enabled {
		client := tabelapreco.NewRedisClient(cfg.Redis)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis indisponível, seguindo sem cache", zap.Error(err))
		} else {
			tabelaRepo = tabelapreco.NewRepositorioComCache(tabelaRepo, client, cfg.Redis.TTL)
			logger.Info("Cache da tabela de preços habilitado", zap.Duration("ttl", cfg.Redis.TTL))
		}
		defer client.Close()
	}

	publicador := eventos.NovoPublicador(cfg.Kafka)
	defer publicador.Close()

	m := metricas.New()

	// Handlers
	tabelaHandler := tabelapreco.NewHandler(tabelaRepo)
	parcelaHandler := parcela.NewHandler(parcela.NewRepository(database))
	vendaService := venda.NewService(venda.NewRepository(database), tabelaRepo, publicador, m)
	vendaHandler := venda.NewHandler(vendaService, cfg.Server.ValidarUFEstrita)

	r := novoRouter(m, tabelaHandler, parcelaHandler, vendaHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", organizacao.Header},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      c.Handler(r),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Servidor rodando", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro no servidor HTTP", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Erro ao encerrar servidor", zap.Error(err))
	}
}

func migrar(database *gorm.DB) error {
	if err := tabelapreco.Migrate(database); err != nil {
		return err
	}
	return venda.Migrate(database)
}

func novoRouter(m *metricas.Metricas, tabela *tabelapreco.Handler, parcelas *parcela.Handler, vendas *venda.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(m.Middleware)

	r.HandleFunc("/health", health).Methods(http.MethodGet)
	r.HandleFunc("/icms/aliquotas", aliquotas).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	// Rotas por organização
	api := r.NewRoute().Subrouter()
	api.Use(organizacao.Middleware)

	// Rotas de tabela de preços
	api.HandleFunc("/tabela-precos", tabela.Criar).Methods(http.MethodPost)
	api.HandleFunc("/tabela-precos", tabela.Listar).Methods(http.MethodGet)
	api.HandleFunc("/tabela-precos/{id}", tabela.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/tabela-precos/{id}", tabela.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/tabela-precos/{id}", tabela.Deletar).Methods(http.MethodDelete)

	// Rotas de vendas
	api.HandleFunc("/vendas/simulacao", vendas.Simular).Methods(http.MethodPost)
	api.HandleFunc("/vendas", vendas.Registrar).Methods(http.MethodPost)
	api.HandleFunc("/vendas", vendas.Listar).Methods(http.MethodGet)
	api.HandleFunc("/vendas/{id}", vendas.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/vendas/{id}", vendas.Deletar).Methods(http.MethodDelete)
	api.HandleFunc("/vendedores/{id}/resumo", vendas.ResumoVendedor).Methods(http.MethodGet)

	// Rotas de parcelas
	api.HandleFunc("/vendas/{id}/parcelas", parcelas.ListarPorVenda).Methods(http.MethodGet)
	api.HandleFunc("/parcelas/{pid}/status", parcelas.AtualizarStatus).Methods(http.MethodPatch)

	return r
}

// GET /health
func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GET /icms/aliquotas
func aliquotas(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(icms.Tabela())
}
