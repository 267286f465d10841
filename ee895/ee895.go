// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ee895

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// PPM=Parts Per Million. Units of measure for CO2 concentration.
type PPM int

// Register is the address of a single byte register of the sensor.
type Register byte

const (
	// The sensor only answers on this i2c address.
	SensorAddress uint16 = 0x5e

	RegCO2MSB      Register = 0x00
	RegCO2LSB      Register = 0x01
	RegTempMSB     Register = 0x02
	RegTempLSB     Register = 0x03
	RegPressureMSB Register = 0x06
	RegPressureLSB Register = 0x07

	// Raw count scaling. Temperature is in 1/100 °C, pressure in 1/10 hPa.
	tempDivisor     = float32(100)
	co2Divisor      = float32(1)
	pressureDivisor = float32(10)

	tempResolution     = 10 * physic.MilliKelvin
	pressureResolution = 10 * physic.Pascal

	// MinSampleInterval is the shortest interval accepted by SenseContinuous.
	MinSampleInterval = time.Second
)

// Env is a sensor reading. Humidity is always zero.
type Env struct {
	physic.Env
	CO2 PPM
}

// Dev represents an EE895 sensor.
type Dev struct {
	d *i2c.Dev
	// mu serializes register pair reads and guards shutdown.
	mu       sync.Mutex
	shutdown chan struct{}
}

func (ppm PPM) String() string {
	return fmt.Sprintf("%d PPM", int(ppm))
}

// String returns the reading in a human readable format.
func (e *Env) String() string {
	return fmt.Sprintf("Temperature: %s Pressure: %s CO2: %s", e.Temperature, e.Pressure, e.CO2)
}

// New returns a driver for the sensor on bus. No I/O is performed, the
// sensor is assumed to be present and measuring.
func New(bus i2c.Bus) (*Dev, error) {
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: SensorAddress}}, nil
}

// readValue reads the msb and lsb registers and returns them combined as a
// signed big-endian value. Bus errors are returned as is.
func (dev *Dev) readValue(msb, lsb Register) (int16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r := make([]byte, 1)
	if err := dev.d.Tx([]byte{byte(msb)}, r); err != nil {
		return 0, err
	}
	hi := r[0]
	if err := dev.d.Tx([]byte{byte(lsb)}, r); err != nil {
		return 0, err
	}
	return int16(uint16(hi)<<8 | uint16(r[0])), nil
}

// ReadTemperature returns the temperature in degrees Celsius.
func (dev *Dev) ReadTemperature() (float32, error) {
	raw, err := dev.readValue(RegTempMSB, RegTempLSB)
	if err != nil {
		return 0, err
	}
	return float32(raw) / tempDivisor, nil
}

// ReadCO2 returns the CO2 concentration in ppm.
func (dev *Dev) ReadCO2() (float32, error) {
	raw, err := dev.readValue(RegCO2MSB, RegCO2LSB)
	if err != nil {
		return 0, err
	}
	return float32(raw) / co2Divisor, nil
}

// ReadPressure returns the ambient pressure in hPa.
func (dev *Dev) ReadPressure() (float32, error) {
	raw, err := dev.readValue(RegPressureMSB, RegPressureLSB)
	if err != nil {
		return 0, err
	}
	return float32(raw) / pressureDivisor, nil
}

// Sense reads CO2, temperature and pressure from the device. On error, env
// is zeroed.
func (dev *Dev) Sense(env *Env) error {
	*env = Env{}
	co2, err := dev.readValue(RegCO2MSB, RegCO2LSB)
	if err != nil {
		return fmt.Errorf("ee895: error reading co2 %w", err)
	}
	temp, err := dev.readValue(RegTempMSB, RegTempLSB)
	if err != nil {
		return fmt.Errorf("ee895: error reading temperature %w", err)
	}
	pressure, err := dev.readValue(RegPressureMSB, RegPressureLSB)
	if err != nil {
		return fmt.Errorf("ee895: error reading pressure %w", err)
	}
	env.CO2 = PPM(co2)
	env.Temperature = physic.ZeroCelsius + physic.Temperature(temp)*tempResolution
	env.Pressure = physic.Pressure(pressure) * pressureResolution
	return nil
}

// SenseContinuous reads the sensor every interval and sends the readings to
// the returned channel. Failed readings are dropped. To terminate, call
// Halt(), which closes the channel.
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan Env, error) {
	if interval < MinSampleInterval {
		return nil, errors.New("ee895: sample interval is < device sample rate")
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		return nil, errors.New("ee895: SenseContinuous already running")
	}
	shutdown := make(chan struct{})
	dev.shutdown = shutdown
	ch := make(chan Env, 16)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-shutdown:
				return
			case <-ticker.C:
				env := Env{}
				if err := dev.Sense(&env); err != nil {
					continue
				}
				select {
				case ch <- env:
				case <-shutdown:
					return
				}
			}
		}
	}()
	return ch, nil
}

// Halt terminates a SenseContinuous in progress. Implements conn.Resource.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		close(dev.shutdown)
		dev.shutdown = nil
	}
	return nil
}

// Precision returns the smallest change in readings the device can produce.
func (dev *Dev) Precision(env *Env) {
	env.Temperature = tempResolution
	env.Pressure = pressureResolution
	env.Humidity = 0
	env.CO2 = 1
}

func (dev *Dev) String() string {
	return fmt.Sprintf("ee895: %s", dev.d.String())
}

var _ conn.Resource = &Dev{}
