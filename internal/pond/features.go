// Package pond evaluates the neural-network emulator that replaces the
// level-ice melt-pond parametrization in the host sea-ice model. One call
// maps the per-category thermodynamic state to the updated pond state.
package pond

// Inputs is the per-grid-cell, per-ice-category state handed over by the
// host model once per timestep. Field order below is the feature order the
// checkpoint tables were trained against; Vector relies on it.
type Inputs struct {
	Dt                  float64 `json:"dt"`
	IceLayers           int     `json:"n_ice_layers"`
	MinIceThickness     float64 `json:"min_ice_thickness"`
	WaterRetainFraction float64 `json:"water_retain_fraction"`
	TopMeltRate         float64 `json:"top_melt_rate"`
	SnowMeltRate        float64 `json:"snow_melt_rate"`
	RainRate            float64 `json:"rain_rate"`
	AirTemperature      float64 `json:"air_temperature"`
	SurfaceHeatFlux     float64 `json:"surface_heat_flux"`
	SnowIceDepthDiff    float64 `json:"snow_ice_depth_diff"`
	IceAreaFraction     float64 `json:"ice_area_fraction"`
	IceVolume           float64 `json:"ice_volume"`
	SnowVolume          float64 `json:"snow_volume"`
	SurfaceTemperature  float64 `json:"surface_temperature"`
	LevelIceFraction    float64 `json:"level_ice_fraction"`
	PondAreaFraction    float64 `json:"pond_area_fraction"`
	PondDepth           float64 `json:"pond_depth"`
	PondIceThickness    float64 `json:"pond_ice_thickness"`
}

// Outputs is the updated pond state plus the fraction of the surface heat
// flux consumed by pond-ice melt. Values are returned as the network
// produced them; the host model applies physical bounds if it wants them.
type Outputs struct {
	PondAreaFraction float64 `json:"pond_area_fraction"`
	PondDepth        float64 `json:"pond_depth"`
	PondIceThickness float64 `json:"pond_ice_thickness"`
	MeltFluxFraction float64 `json:"flux_fraction"`
}

const (
	FeatureCount = 18
	OutputCount  = 4
)

// Vector lays the named inputs out in training order. The layer-count
// feature is coerced to a double here and nowhere else.
func (in Inputs) Vector() []float64 {
	return []float64{
		in.Dt,
		float64(in.IceLayers),
		in.MinIceThickness,
		in.WaterRetainFraction,
		in.TopMeltRate,
		in.SnowMeltRate,
		in.RainRate,
		in.AirTemperature,
		in.SurfaceHeatFlux,
		in.SnowIceDepthDiff,
		in.IceAreaFraction,
		in.IceVolume,
		in.SnowVolume,
		in.SurfaceTemperature,
		in.LevelIceFraction,
		in.PondAreaFraction,
		in.PondDepth,
		in.PondIceThickness,
	}
}

func outputsFromVector(v []float64) Outputs {
	return Outputs{
		PondAreaFraction: v[0],
		PondDepth:        v[1],
		PondIceThickness: v[2],
		MeltFluxFraction: v[3],
	}
}

// Vector lays the outputs out in the order of the output scaler table.
func (out Outputs) Vector() []float64 {
	return []float64{
		out.PondAreaFraction,
		out.PondDepth,
		out.PondIceThickness,
		out.MeltFluxFraction,
	}
}

// FeatureNames returns the column names for the 18 features in training
// order. The dataset reader and writer key their columns off this list.
func FeatureNames() []string {
	return []string{
		"dt",
		"n_ice_layers",
		"min_ice_thickness",
		"water_retain_fraction",
		"top_melt_rate",
		"snow_melt_rate",
		"rain_rate",
		"air_temperature",
		"surface_heat_flux",
		"snow_ice_depth_diff",
		"ice_area_fraction",
		"ice_volume",
		"snow_volume",
		"surface_temperature",
		"level_ice_fraction",
		"pond_area_fraction",
		"pond_depth",
		"pond_ice_thickness",
	}
}

// OutputNames returns the column names for the 4 predicted quantities.
func OutputNames() []string {
	return []string{
		"pond_area_fraction",
		"pond_depth",
		"pond_ice_thickness",
		"flux_fraction",
	}
}

// FromVector is the inverse of Vector; it expects exactly FeatureCount
// values in training order.
func FromVector(v []float64) Inputs {
	return Inputs{
		Dt:                  v[0],
		IceLayers:           int(v[1]),
		MinIceThickness:     v[2],
		WaterRetainFraction: v[3],
		TopMeltRate:         v[4],
		SnowMeltRate:        v[5],
		RainRate:            v[6],
		AirTemperature:      v[7],
		SurfaceHeatFlux:     v[8],
		SnowIceDepthDiff:    v[9],
		IceAreaFraction:     v[10],
		IceVolume:           v[11],
		SnowVolume:          v[12],
		SurfaceTemperature:  v[13],
		LevelIceFraction:    v[14],
		PondAreaFraction:    v[15],
		PondDepth:           v[16],
		PondIceThickness:    v[17],
	}
}
