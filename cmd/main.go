package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GestaoMunicipal/api-folha/internal/auth"
	"github.com/GestaoMunicipal/api-folha/internal/cache"
	"github.com/GestaoMunicipal/api-folha/internal/config"
	"github.com/GestaoMunicipal/api-folha/internal/funcionario"
	"github.com/GestaoMunicipal/api-folha/internal/logger"
	"github.com/GestaoMunicipal/api-folha/internal/middleware"
	"github.com/GestaoMunicipal/api-folha/internal/notificacao"
	"github.com/GestaoMunicipal/api-folha/internal/simulacao"
	"github.com/GestaoMunicipal/api-folha/internal/usuario"
	"github.com/GestaoMunicipal/api-folha/internal/utils/db"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Erro ao carregar configuração: ", err)
	}

	zlog, err := logger.New(cfg.Stage, cfg.LogLevel)
	if err != nil {
		log.Fatal("Erro ao criar logger: ", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()
	database, err := db.GetDB(ctx, cfg.DB)
	if err != nil {
		zlog.Fatal("Erro ao conectar no banco", zap.Error(err))
	}

	if err := usuario.GarantirAdmin(database, zlog, cfg.AdminEmail, cfg.AdminSenha); err != nil {
		zlog.Fatal("Erro ao criar administrador", zap.Error(err))
	}

	keys, err := auth.LoadKeys(cfg.Auth)
	if err != nil {
		zlog.Fatal("Erro ao carregar chave de assinatura", zap.Error(err))
	}

	var resultados cache.Cache = cache.NewMemoryCache(cfg.Cache.TTL)
	if cfg.Cache.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			zlog.Warn("Redis indisponível, usando cache em memória", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
			_ = rc.Close()
		} else {
			resultados = rc
			defer func() { _ = rc.Close() }()
		}
	}

	// Handlers
	sessoes := auth.NewSessoes(database, keys, cfg.Auth.CookieSecure)
	simulacaoService := simulacao.NewService(simulacao.NewRepository(database), resultados, zlog)
	notificador := notificacao.NewNotificador(cfg.WebhookAlertaURL, zlog)

	router := novoRouter(handlers{
		keys:         keys,
		sessoes:      sessoes,
		usuarios:     usuario.NewHandler(database, sessoes, zlog),
		funcionarios: funcionario.NewHandler(database, simulacaoService, notificador, zlog),
		simulacoes:   simulacao.NewHandler(simulacaoService, zlog),
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requisicoes, cfg.RateLimit.Janela)
	defer rateLimiter.Stop()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.CorrelationIDHeader},
		ExposedHeaders:   []string{middleware.CorrelationIDHeader},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Porta,
		Handler:      c.Handler(middleware.Logging(zlog)(middleware.RateLimit(rateLimiter)(router))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("Servidor rodando", zap.String("addr", server.Addr), zap.String("stage", cfg.Stage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		zlog.Error("Erro ao iniciar servidor", zap.Error(err))
		return
	case <-quit:
		zlog.Info("Encerrando servidor")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Erro ao encerrar servidor", zap.Error(err))
	}
	zlog.Info("Servidor encerrado")
}
