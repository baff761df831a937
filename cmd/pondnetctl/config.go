package main

import (
	"encoding/json"
	"fmt"
	"os"

	"pondnet/internal/pond"
	pondapi "pondnet/pkg/pondnet"
)

func loadInferRequestFromConfig(path string) (pondapi.InferRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pondapi.InferRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return pondapi.InferRequest{}, err
	}

	var req pondapi.InferRequest
	if v, ok := asString(raw["checkpoint_id"]); ok {
		req.CheckpointID = v
	}
	if forcing, ok := raw["forcing"].(map[string]any); ok {
		req.Inputs = inputsFromMap(forcing)
	}
	return req, nil
}

func inputsFromMap(raw map[string]any) pond.Inputs {
	var in pond.Inputs
	if v, ok := asFloat64(raw["dt"]); ok {
		in.Dt = v
	}
	if v, ok := asInt(raw["n_ice_layers"]); ok {
		in.IceLayers = v
	}
	if v, ok := asFloat64(raw["min_ice_thickness"]); ok {
		in.MinIceThickness = v
	}
	if v, ok := asFloat64(raw["water_retain_fraction"]); ok {
		in.WaterRetainFraction = v
	}
	if v, ok := asFloat64(raw["top_melt_rate"]); ok {
		in.TopMeltRate = v
	}
	if v, ok := asFloat64(raw["snow_melt_rate"]); ok {
		in.SnowMeltRate = v
	}
	if v, ok := asFloat64(raw["rain_rate"]); ok {
		in.RainRate = v
	}
	if v, ok := asFloat64(raw["air_temperature"]); ok {
		in.AirTemperature = v
	}
	if v, ok := asFloat64(raw["surface_heat_flux"]); ok {
		in.SurfaceHeatFlux = v
	}
	if v, ok := asFloat64(raw["snow_ice_depth_diff"]); ok {
		in.SnowIceDepthDiff = v
	}
	if v, ok := asFloat64(raw["ice_area_fraction"]); ok {
		in.IceAreaFraction = v
	}
	if v, ok := asFloat64(raw["ice_volume"]); ok {
		in.IceVolume = v
	}
	if v, ok := asFloat64(raw["snow_volume"]); ok {
		in.SnowVolume = v
	}
	if v, ok := asFloat64(raw["surface_temperature"]); ok {
		in.SurfaceTemperature = v
	}
	if v, ok := asFloat64(raw["level_ice_fraction"]); ok {
		in.LevelIceFraction = v
	}
	if v, ok := asFloat64(raw["pond_area_fraction"]); ok {
		in.PondAreaFraction = v
	}
	if v, ok := asFloat64(raw["pond_depth"]); ok {
		in.PondDepth = v
	}
	if v, ok := asFloat64(raw["pond_ice_thickness"]); ok {
		in.PondIceThickness = v
	}
	return in
}

func loadBatchRequestFromConfig(path string) (pondapi.BatchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pondapi.BatchRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return pondapi.BatchRequest{}, err
	}

	var req pondapi.BatchRequest
	if v, ok := asString(raw["checkpoint_id"]); ok {
		req.CheckpointID = v
	}
	if v, ok := asString(raw["input_path"]); ok {
		req.InputPath = v
	}
	if v, ok := asString(raw["output_path"]); ok {
		req.OutputPath = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		req.Workers = v
	}
	return req, nil
}

func loadOrDefaultInferRequest(configPath string) (pondapi.InferRequest, error) {
	if configPath == "" {
		return pondapi.InferRequest{}, nil
	}
	req, err := loadInferRequestFromConfig(configPath)
	if err != nil {
		return pondapi.InferRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func loadOrDefaultBatchRequest(configPath string) (pondapi.BatchRequest, error) {
	if configPath == "" {
		return pondapi.BatchRequest{}, nil
	}
	req, err := loadBatchRequestFromConfig(configPath)
	if err != nil {
		return pondapi.BatchRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func overrideInferFromFlags(req *pondapi.InferRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "checkpoint":
			req.CheckpointID = v.(string)
		case "dt":
			req.Inputs.Dt = v.(float64)
		case "n-ice-layers":
			req.Inputs.IceLayers = v.(int)
		case "min-ice-thickness":
			req.Inputs.MinIceThickness = v.(float64)
		case "water-retain-fraction":
			req.Inputs.WaterRetainFraction = v.(float64)
		case "top-melt-rate":
			req.Inputs.TopMeltRate = v.(float64)
		case "snow-melt-rate":
			req.Inputs.SnowMeltRate = v.(float64)
		case "rain-rate":
			req.Inputs.RainRate = v.(float64)
		case "air-temperature":
			req.Inputs.AirTemperature = v.(float64)
		case "surface-heat-flux":
			req.Inputs.SurfaceHeatFlux = v.(float64)
		case "snow-ice-depth-diff":
			req.Inputs.SnowIceDepthDiff = v.(float64)
		case "ice-area-fraction":
			req.Inputs.IceAreaFraction = v.(float64)
		case "ice-volume":
			req.Inputs.IceVolume = v.(float64)
		case "snow-volume":
			req.Inputs.SnowVolume = v.(float64)
		case "surface-temperature":
			req.Inputs.SurfaceTemperature = v.(float64)
		case "level-ice-fraction":
			req.Inputs.LevelIceFraction = v.(float64)
		case "pond-area-fraction":
			req.Inputs.PondAreaFraction = v.(float64)
		case "pond-depth":
			req.Inputs.PondDepth = v.(float64)
		case "pond-ice-thickness":
			req.Inputs.PondIceThickness = v.(float64)
		}
	}
}

func overrideBatchFromFlags(req *pondapi.BatchRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "checkpoint":
			req.CheckpointID = v.(string)
		case "in":
			req.InputPath = v.(string)
		case "out":
			req.OutputPath = v.(string)
		case "workers":
			req.Workers = v.(int)
		}
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
