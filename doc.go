// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envsensors is a container for environmental sensor drivers.
//
// The drivers are built on periph.io/x/conn/v3 and work with any i2c.Bus,
// including the i2ctest playback buses used by the unit tests.
package envsensors
