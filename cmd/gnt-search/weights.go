package main

import (
	"github.com/BurntSushi/toml"

	"github.com/gnt-ai/searchcore/internal/engine"
)

// weightsFile mirrors engine.Weights field-for-field so a tuning run can
// override any subset of them from a TOML file without touching code.
type weightsFile struct {
	TowerHeightValue *int `toml:"tower_height_value"`
	GuardBaseValue   *int `toml:"guard_base_value"`
	MobilityWeight   *int `toml:"mobility_weight"`
	CenterControlBase *int `toml:"center_control_base"`
	GuardAdvanceRank *int `toml:"guard_advance_rank"`
	GuardDangerRank  *int `toml:"guard_danger_rank"`
	TempoBonus       *int `toml:"tempo_bonus"`
}

// loadWeightsFile decodes path and overrides the non-nil fields into w,
// leaving engine.DefaultWeights() values for anything the file omits.
func loadWeightsFile(path string, w *engine.Weights) error {
	var f weightsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return err
	}

	if f.TowerHeightValue != nil {
		w.TowerHeightValue = *f.TowerHeightValue
	}
	if f.GuardBaseValue != nil {
		w.GuardBaseValue = *f.GuardBaseValue
	}
	if f.MobilityWeight != nil {
		w.MobilityWeight = *f.MobilityWeight
	}
	if f.CenterControlBase != nil {
		w.CenterControlBase = *f.CenterControlBase
	}
	if f.GuardAdvanceRank != nil {
		w.GuardAdvanceRank = *f.GuardAdvanceRank
	}
	if f.GuardDangerRank != nil {
		w.GuardDangerRank = *f.GuardDangerRank
	}
	if f.TempoBonus != nil {
		w.TempoBonus = *f.TempoBonus
	}
	return nil
}
