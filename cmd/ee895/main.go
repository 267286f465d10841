// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ee895 reads an EE895 sensor and exposes the readings as Prometheus
// metrics.
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/envsensors/ee895"
)

// CLI args
var (
	busName      = flag.String("bus", "", "I²C bus to use, defaults to the first one found")
	listenAddr   = flag.String("listen-address", ":8080", "The address to listen on for HTTP requests.")
	readInterval = flag.Duration("read-int", 30*time.Second, "time interval between sensor reads")
	once         = flag.Bool("once", false, "log a single reading and exit")
	verbose      = flag.Bool("v", false, "log every reading")
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}

func mainImpl() error {
	if err := checkInterval(*readInterval); err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize host")
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return errors.Wrapf(err, "failed to open i2c bus %q", *busName)
	}
	defer bus.Close()

	dev, err := ee895.New(bus)
	if err != nil {
		return errors.Wrap(err, "failed to open sensor")
	}

	logger := log.StandardLogger()
	if *once {
		env := ee895.Env{}
		if err := dev.Sense(&env); err != nil {
			return err
		}
		logReading(logger, log.InfoLevel, &env)
		return nil
	}

	exp, err := newExporter(prometheus.DefaultRegisterer)
	if err != nil {
		return errors.Wrap(err, "failed to register metrics")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics to support exemplars.
			EnableOpenMetrics: true,
		},
	))
	srv := &http.Server{Addr: *listenAddr, Handler: mux}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Infof("reading %s every %s, serving metrics on %s", dev, *readInterval, *listenAddr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(*readInterval)
	defer ticker.Stop()
	exp.sample(dev, logger)
	for {
		select {
		case <-ticker.C:
			exp.sample(dev, logger)
		case s := <-sig:
			log.Infof("received %s, shutting down", s)
			return srv.Close()
		case err := <-errc:
			return errors.Wrap(err, "metrics server failed")
		}
	}
}

// checkInterval rejects read intervals shorter than the sensor supports.
func checkInterval(d time.Duration) error {
	if d < ee895.MinSampleInterval {
		return errors.Errorf("read interval %s is shorter than %s", d, ee895.MinSampleInterval)
	}
	return nil
}

func logReading(logger log.FieldLogger, level log.Level, env *ee895.Env) {
	logger.WithFields(log.Fields{
		"co2":         env.CO2.String(),
		"temperature": env.Temperature.String(),
		"pressure":    env.Pressure.String(),
	}).Log(level, "reading")
}
