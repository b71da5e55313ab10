// Package missiondata embeds the sample mission context used when no mission
// file is configured.
package missiondata

import _ "embed"

// SampleName is the pseudo file name reported for the embedded mission.
const SampleName = "embedded:aerobridge.yaml"

//go:embed aerobridge.yaml
var sample []byte

// Sample returns a copy of the embedded sample mission context (YAML).
func Sample() []byte {
	out := make([]byte, len(sample))
	copy(out, sample)
	return out
}
