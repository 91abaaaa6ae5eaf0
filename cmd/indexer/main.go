package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	"chainindexer/internal/chainsim"
	"chainindexer/internal/memmonitor"
	"chainindexer/internal/resultstore"
	"chainindexer/pkg/banner"
	"chainindexer/pkg/config"
	"chainindexer/pkg/logger"
	"chainindexer/pkg/runner"
	"chainindexer/pkg/shutdown"
	"chainindexer/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	version = "dev"
)

func main() {
	_ = godotenv.Load(".env")

	cfgPath := flag.String("config", "./config.yaml", "path to config file")
	addr := flag.String("addr", ":8090", "debug/metrics HTTP listen address")
	addrBookSize := flag.Int("addresses", 200, "synthetic address book size")
	flag.Parse()

	cfg, envUsed, err := config.LoadEffective(*cfgPath)
	if err != nil {
		shutdown.Abort("loading config", err)
	}
	logger.InitWithLevel(cfg.Logging.Level)
	logger.Info("config loaded", "path", *cfgPath, "env_overrides_applied", envUsed)

	banner.Print(cfg, version)

	dbPath := cfg.Store.Path
	if dbPath == "" {
		dbPath = "./.chainindexer-data"
	}
	store, err := resultstore.Open(dbPath)
	if err != nil {
		shutdown.Abort("opening result store", err)
	}
	defer store.Close()

	addressBook := make([]string, *addrBookSize)
	for i := range addressBook {
		addressBook[i] = fmt.Sprintf("0x%040x", i+1)
	}
	client := chainsim.New(store, addressBook, 5*time.Millisecond)

	memThreshold := uint64(cfg.Memory.ThresholdBytes)
	if memThreshold == 0 {
		memThreshold = 512 << 20
	}
	memPollInterval := cfg.Memory.PollInterval.Duration()
	if memPollInterval == 0 {
		memPollInterval = 5 * time.Second
	}
	monitor := memmonitor.New(memPollInterval, memThreshold)

	runnerCfg := cfg.ToRunnerConfig()
	runnerCfg.MemoryMonitor = monitor
	if runnerCfg.MaxBatchSize == 0 {
		runnerCfg.MaxBatchSize = 25
	}
	if runnerCfg.MaxConcurrency == 0 {
		runnerCfg.MaxConcurrency = 4
	}
	if runnerCfg.FlushInterval == 0 {
		runnerCfg.FlushInterval = time.Second
	}

	reg := prometheus.DefaultRegisterer
	r, err := runner.New[string](client, runnerCfg, reg)
	if err != nil {
		shutdown.Abort("constructing runner", err)
	}

	ctx, cancel := shutdown.SetupSignalHandler(context.Background())
	defer cancel()

	monitor.Start(ctx)
	r.Start(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/debug", func(w http.ResponseWriter, req *http.Request) {
		_ = utils.JSONWrite(w, http.StatusOK, r.DebugCount())
	})
	mux.HandleFunc("/shrink", func(w http.ResponseWriter, req *http.Request) {
		if err := r.Shrink(); err != nil {
			utils.JSONError(w, http.StatusConflict, err.Error())
			return
		}
		_ = utils.JSONWrite(w, http.StatusOK, map[string]bool{"shrunk": r.Shrunk()})
	})
	mux.HandleFunc("/balance", func(w http.ResponseWriter, req *http.Request) {
		addr := req.URL.Query().Get("address")
		if addr == "" {
			utils.JSONError(w, http.StatusBadRequest, "missing address query parameter")
			return
		}
		bal, err := store.GetBalance(addr)
		if err != nil {
			utils.JSONError(w, http.StatusNotFound, err.Error())
			return
		}
		_ = json.NewEncoder(w).Encode(bal)
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		logger.Info("debug http listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("debug http server error", "err", err)
		}
	}()

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	_ = srv.Shutdown(stopCtx)
	r.Stop(stopCtx)
	monitor.Stop()
	logger.Info("indexer stopped")
}
