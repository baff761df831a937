package pond

import "math"

// VerifyTolerance is the relative tolerance the shipped checkpoint was
// validated at against the reference evaluation.
const VerifyTolerance = 1e-9

// VerifyCase pairs a named forcing scenario with the outputs the reference
// evaluation produced for the shipped checkpoint.
type VerifyCase struct {
	Name   string
	Inputs Inputs
	Want   Outputs
}

// VerifyResult reports one scenario outcome. MaxRelDiff is the largest
// relative difference across the four outputs.
type VerifyResult struct {
	Name       string
	Got        Outputs
	Want       Outputs
	MaxRelDiff float64
	Pass       bool
}

var verifyCases = []VerifyCase{
	{
		Name: "reference-summer-onset",
		Inputs: Inputs{
			Dt:                  3600.0,
			IceLayers:           7,
			MinIceThickness:     0.01,
			WaterRetainFraction: 0.5,
			TopMeltRate:         0,
			SnowMeltRate:        0,
			RainRate:            0,
			AirTemperature:      260.0,
			SurfaceHeatFlux:     0,
			SnowIceDepthDiff:    0,
			IceAreaFraction:     0.5,
			IceVolume:           1.0,
			SnowVolume:          0.1,
			SurfaceTemperature:  -5.0,
			LevelIceFraction:    1.0,
			PondAreaFraction:    0,
			PondDepth:           0,
			PondIceThickness:    0,
		},
		Want: Outputs{
			PondAreaFraction: 0.23800483044691817,
			PondDepth:        0.04013201378307425,
			PondIceThickness: 0.01237535324548673,
			MeltFluxFraction: 0.34722474974733547,
		},
	},
	{
		Name: "peak-melt",
		Inputs: Inputs{
			Dt:                  3600.0,
			IceLayers:           7,
			MinIceThickness:     0.01,
			WaterRetainFraction: 0.6,
			TopMeltRate:         4.2e-08,
			SnowMeltRate:        1.5e-08,
			RainRate:            2.4e-08,
			AirTemperature:      274.5,
			SurfaceHeatFlux:     85.0,
			SnowIceDepthDiff:    -0.12,
			IceAreaFraction:     0.92,
			IceVolume:           2.4,
			SnowVolume:          0.02,
			SurfaceTemperature:  -0.2,
			LevelIceFraction:    0.65,
			PondAreaFraction:    0.35,
			PondDepth:           0.12,
			PondIceThickness:    0,
		},
		Want: Outputs{
			PondAreaFraction: 0.04788491769999091,
			PondDepth:        0.05619693775105983,
			PondIceThickness: -0.007644492427769725,
			MeltFluxFraction: 0.28366645253200334,
		},
	},
	{
		Name: "freeze-up",
		Inputs: Inputs{
			Dt:                  3600.0,
			IceLayers:           7,
			MinIceThickness:     0.01,
			WaterRetainFraction: 0.5,
			TopMeltRate:         0,
			SnowMeltRate:        0,
			RainRate:            0,
			AirTemperature:      248.2,
			SurfaceHeatFlux:     -40.5,
			SnowIceDepthDiff:    0.08,
			IceAreaFraction:     0.97,
			IceVolume:           1.8,
			SnowVolume:          0.22,
			SurfaceTemperature:  -14.6,
			LevelIceFraction:    0.9,
			PondAreaFraction:    0.18,
			PondDepth:           0.05,
			PondIceThickness:    0.015,
		},
		Want: Outputs{
			PondAreaFraction: 0.0970148177868387,
			PondDepth:        0.04061345657740542,
			PondIceThickness: 0.02536335299552582,
			MeltFluxFraction: 0.38995885106517814,
		},
	},
}

// VerifyCases returns a copy of the built-in verification scenarios.
func VerifyCases() []VerifyCase {
	return append([]VerifyCase(nil), verifyCases...)
}

// Verify evaluates every built-in scenario on the given emulator and
// grades each against the reference outputs at VerifyTolerance.
func Verify(em *Emulator) ([]VerifyResult, error) {
	results := make([]VerifyResult, 0, len(verifyCases))
	for _, vc := range verifyCases {
		got, err := em.Infer(vc.Inputs)
		if err != nil {
			return nil, err
		}
		maxDiff := 0.0
		gotVec, wantVec := got.Vector(), vc.Want.Vector()
		for k := range wantVec {
			if d := relativeDiff(gotVec[k], wantVec[k]); d > maxDiff {
				maxDiff = d
			}
		}
		results = append(results, VerifyResult{
			Name:       vc.Name,
			Got:        got,
			Want:       vc.Want,
			MaxRelDiff: maxDiff,
			Pass:       maxDiff <= VerifyTolerance,
		})
	}
	return results, nil
}

func relativeDiff(got, want float64) float64 {
	diff := math.Abs(got - want)
	if want == 0 {
		return diff
	}
	return diff / math.Abs(want)
}
