package dataset

import (
	"math/rand"

	"pondnet/internal/pond"
)

// GenerateForcing builds a synthetic forcing table with count rows. The
// same seed always yields the same table. The configuration columns the
// training set held constant (dt, n_ice_layers, min_ice_thickness) are
// pinned to the training values; the live columns are sampled uniformly
// over roughly two training standard deviations, clipped to physical
// bounds.
func GenerateForcing(seed int64, count int) []pond.Inputs {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]pond.Inputs, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, pond.Inputs{
			Dt:                  3600.0,
			IceLayers:           7,
			MinIceThickness:     0.01,
			WaterRetainFraction: sampleRange(rng, 0.2, 0.8),
			TopMeltRate:         sampleRange(rng, 0.0, 6.0e-8),
			SnowMeltRate:        sampleRange(rng, 0.0, 4.0e-8),
			RainRate:            sampleRange(rng, 0.0, 2.5e-8),
			AirTemperature:      sampleRange(rng, 240.0, 290.0),
			SurfaceHeatFlux:     sampleRange(rng, -80.0, 110.0),
			SnowIceDepthDiff:    sampleRange(rng, -0.55, 0.65),
			IceAreaFraction:     sampleRange(rng, 0.0, 1.0),
			IceVolume:           sampleRange(rng, 0.0, 3.0),
			SnowVolume:          sampleRange(rng, 0.0, 0.35),
			SurfaceTemperature:  sampleRange(rng, -22.0, 0.0),
			LevelIceFraction:    sampleRange(rng, 0.25, 1.0),
			PondAreaFraction:    sampleRange(rng, 0.0, 0.5),
			PondDepth:           sampleRange(rng, 0.0, 0.15),
			PondIceThickness:    sampleRange(rng, 0.0, 0.05),
		})
	}
	return rows
}

// GenerateForcingFile writes a generated table to path and returns the
// number of rows written.
func GenerateForcingFile(path string, seed int64, count int) (int, error) {
	rows := GenerateForcing(seed, count)
	if err := WriteForcingFile(path, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func sampleRange(rng *rand.Rand, min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	span := max - min
	if span == 0 {
		return min
	}
	return min + rng.Float64()*span
}
