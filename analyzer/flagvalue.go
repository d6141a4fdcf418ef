// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"strconv"

	"fillmore-labs.com/bloatedscope/internal/config"
)

// detectorValue is a boolean [flag.Value] toggling one detector of a shared bitmask.
type detectorValue struct {
	detectors *config.BitMask[config.DetectorFlags]
	detector  config.DetectorFlags
}

func newDetectorValue(detectors *config.BitMask[config.DetectorFlags], detector config.DetectorFlags) detectorValue {
	return detectorValue{detectors: detectors, detector: detector}
}

// Set implements [flag.Value].
func (f detectorValue) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.detectors.Set(f.detector, b)

	return nil
}

// String implements [flag.Value].
func (f detectorValue) String() string {
	if f.detectors == nil { // zero value used by flag.PrintDefaults
		return "false"
	}

	return strconv.FormatBool(f.detectors.Enabled(f.detector))
}

// Get implements [flag.Getter].
func (f detectorValue) Get() any {
	return f.detectors != nil && f.detectors.Enabled(f.detector)
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f detectorValue) IsBoolFlag() bool { return true }

// parseBool is [strconv.ParseBool] accepting "on" and "off" as well.
func parseBool(str string) (bool, error) {
	switch str {
	case "on", "On", "ON":
		return true, nil
	case "off", "Off", "OFF":
		return false, nil
	}

	return strconv.ParseBool(str)
}
