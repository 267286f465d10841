// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/envsensors/ee895"
)

const hectoPascal = 100 * physic.Pascal

// sensor is the part of ee895.Dev the exporter reads from.
type sensor interface {
	Sense(env *ee895.Env) error
}

// exporter holds the gauges updated from sensor readings.
type exporter struct {
	co2         prometheus.Gauge
	temperature prometheus.Gauge
	pressure    prometheus.Gauge
}

func newExporter(reg prometheus.Registerer) (*exporter, error) {
	e := &exporter{
		co2:         newGauge("air_co2_level", "Air Carbon Dioxide level (units: ppm)"),
		temperature: newGauge("air_temperature", "Air Temperature (units: degrees Celsius)"),
		pressure:    newGauge("air_atm_pressure", "Atmospheric Pressure (units: hPa)"),
	}
	for _, c := range []prometheus.Collector{e.co2, e.temperature, e.pressure} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
}

func (e *exporter) record(env *ee895.Env) {
	e.co2.Set(float64(env.CO2))
	e.temperature.Set(env.Temperature.Celsius())
	e.pressure.Set(float64(env.Pressure) / float64(hectoPascal))
}

// sample reads dev once and updates the gauges. A failed read is logged and
// leaves the gauges at their previous values.
func (e *exporter) sample(dev sensor, logger log.FieldLogger) {
	env := ee895.Env{}
	if err := dev.Sense(&env); err != nil {
		logger.Errorf("failed to read from sensor: %s", err)
		return
	}
	e.record(&env)
	logReading(logger, log.DebugLevel, &env)
}
