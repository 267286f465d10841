// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ee895 provides a driver for the E+E Elektronik EE895 CO2,
// temperature and pressure sensor using the I2C simplified protocol.
//
// Each measurement is stored by the sensor as a signed 16-bit value split
// over an MSB and an LSB register. The driver reads the two registers with
// separate transactions, so a register update in between the two reads
// produces a torn value. The sensor refreshes its registers once per
// measurement interval (15 seconds by default).
//
// Range: 0 - 10000 ppm CO2, -40°C - 60°C, 700 - 1100 hPa
//
// Resolution: 1 ppm, 0.01°C, 0.1 hPa
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://www.epluse.com/fileadmin/data/product/ee895/BA_EE895.pdf
package ee895
