package main

import (
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/cli"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/grpc/policyserver"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	tablePath := flag.String("table", "", "Checkpoint to serve (empty to use checkpoint.save_path)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	noWatch := flag.Bool("no-watch", false, "Do not reload the checkpoint when it changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *port == -1 {
		*port = cfg.Server.Port
	}
	if *host == "" {
		*host = cfg.Server.Host
	}
	if *tablePath == "" {
		*tablePath = cfg.Checkpoint.SavePath
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if !*enableReflection {
		*enableReflection = cfg.Server.EnableReflection
	}
	watch := cfg.Server.WatchCheckpoint && !*noWatch

	cli.SetupLogging(*logLevel, cfg.Logging.Format)

	log.Info().
		Int("port", *port).
		Str("host", *host).
		Str("table", *tablePath).
		Int("board_size", cfg.Game.BoardSize).
		Msg("Starting policy server")

	ctx, stop := cli.SignalContext()
	defer stop()

	monitor := monitoring.NewRuntimeMonitor(log.Logger, time.Duration(cfg.Server.MonitorInterval)*time.Second)
	go monitor.Run(ctx)

	rewards := cfg.Game.Rewards
	policyService := policyserver.NewServer(policyserver.Config{
		BoardSize: cfg.Game.BoardSize,
		Rewards:   &rewards,
		Logger:    log.Logger,
		Monitor:   monitor,
	})
	// A missing table is not fatal: the watcher picks it up once training saves it
	if err := policyService.LoadCheckpoint(*tablePath); err != nil {
		log.Warn().Err(err).Msg("No checkpoint loaded, Act and Evaluate will fail until one appears")
	}
	if watch {
		watcher, err := policyserver.NewCheckpointWatcher(policyService, *tablePath, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to watch checkpoint")
		}
		go watcher.Run(ctx)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			policyserver.LoggingInterceptor(log.Logger),
			policyserver.RecoveryInterceptor(log.Logger),
		),
	)
	policyserver.RegisterPolicyServiceServer(grpcServer, policyService)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(policyserver.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if *enableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Info().Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(policyserver.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		// Give ongoing requests time to complete
		time.Sleep(time.Duration(cfg.Server.GracefulShutdownDelay) * time.Second)

		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("Failed to serve")
	}

	<-done
	m := monitor.Metrics()
	log.Info().
		Dur("uptime", m.Uptime).
		Interface("requests", m.Requests).
		Interface("failures", m.Failures).
		Msg("Server shutdown complete")
}

