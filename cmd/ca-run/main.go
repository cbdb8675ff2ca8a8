package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxel-ca/internal/automaton"
	"voxel-ca/internal/config"
	"voxel-ca/internal/core"
	"voxel-ca/internal/headless"
	"voxel-ca/internal/metrics"
	_ "voxel-ca/internal/sims/moore3d"
)

func main() {
	steps := flag.Int("steps", 50, "maximum generations to advance")
	untilRepeat := flag.Bool("until-repeat", true, "stop once the world is stable or cycling")
	verbose := flag.Bool("v", false, "log every changed cell")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address and keep serving after the run")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim, err := core.New(cfg.Sim, cfg.Map())
	if err != nil {
		log.Fatal(err)
	}
	hs, ok := sim.(headless.Sim)
	if !ok {
		log.Fatalf("sim %q cannot run headless", sim.Name())
	}

	var srv *http.Server
	if *metricsAddr != "" {
		collector := metrics.NewCollector(nil)
		if o, ok := sim.(interface{ SetObserver(automaton.Observer) }); ok {
			o.SetObserver(collector)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		srv = &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("metrics server: %v", err)
			}
		}()
		log.Printf("serving metrics on %s/metrics", *metricsAddr)
	}

	size := sim.Size()
	log.Printf("%s %dx%dx%d origin %s, death %.2f, seed %d, rule %s",
		sim.Name(), size.W, size.H, size.D, cfg.Origin, cfg.DeathProbability, cfg.Seed, cfg.Rule)

	runner := headless.Runner{Steps: *steps, StopOnRepeat: *untilRepeat, Verbose: *verbose}
	sum, err := runner.Run(ctx, hs)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	log.Printf("stopped (%s) after %d generations: %d changes total, %d alive, period %d",
		sum.Reason, sum.Generations, sum.TotalChanged, sum.Alive, sum.Period)

	if srv != nil {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("metrics shutdown: %v", err)
		}
	}
}
