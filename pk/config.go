package pk

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the full YAML scenario file the CLI loads: a drug model, a
// pump configuration, and an ordered list of targets, optionally preceded
// by user-defined infusions. Every top-level and nested section must be
// listed here to satisfy strict KnownFields(true) parsing, so a typo in a
// scenario file fails loudly instead of being silently ignored.
type Config struct {
	Model     ModelConfig    `yaml:"model"`
	Pump      PumpConfigYAML `yaml:"pump"`
	Infusions []InfusionYAML `yaml:"infusions"`
	Targets   []TargetYAML   `yaml:"targets"`
}

// ModelConfig mirrors DrugModel for YAML decoding.
type ModelConfig struct {
	Compartments      int     `yaml:"compartments"`
	V1                float64 `yaml:"v1"`
	K10               float64 `yaml:"k10"`
	K12               float64 `yaml:"k12"`
	K21               float64 `yaml:"k21"`
	K13               float64 `yaml:"k13"`
	K31               float64 `yaml:"k31"`
	K20               float64 `yaml:"k20"`
	Ke0               float64 `yaml:"ke0"`
	ConcentrationUnit string  `yaml:"concentration_unit"`
	TargetUnit        string  `yaml:"target_unit"`
}

func (m ModelConfig) toDrugModel() DrugModel {
	return DrugModel{
		Compartments:      Compartments(m.Compartments),
		V1:                m.V1,
		K10:               m.K10,
		K12:               m.K12,
		K21:               m.K21,
		K13:               m.K13,
		K31:               m.K31,
		K20:               m.K20,
		Ke0:               m.Ke0,
		ConcentrationUnit: m.ConcentrationUnit,
		TargetUnit:        m.TargetUnit,
	}
}

// PumpConfigYAML mirrors PumpConfig for YAML decoding; optional fields that
// are absent fall back to the §6 defaults after decoding.
type PumpConfigYAML struct {
	DrugConcentration             float64  `yaml:"drug_concentration"`
	EndTime                       float64  `yaml:"end_time"`
	MaintenanceInfusionDuration   *float64 `yaml:"maintenance_infusion_duration"`
	MaintenanceInfusionMultiplier *float64 `yaml:"maintenance_infusion_multiplier"`
	MaxInfusionRate               *float64 `yaml:"max_infusion_rate"`
	BolusTime                     *float64 `yaml:"bolus_time"`
}

func (p PumpConfigYAML) toPumpConfig() (PumpConfig, error) {
	pump, err := NewPumpConfig(p.DrugConcentration, p.EndTime)
	if err != nil {
		return PumpConfig{}, err
	}
	if p.MaintenanceInfusionDuration != nil {
		pump.MaintenanceInfusionDuration = *p.MaintenanceInfusionDuration
	}
	if p.MaintenanceInfusionMultiplier != nil {
		pump.MaintenanceInfusionMultiplier = *p.MaintenanceInfusionMultiplier
	}
	if p.MaxInfusionRate != nil {
		pump.MaxInfusionRate = *p.MaxInfusionRate
	}
	if p.BolusTime != nil {
		pump.BolusTime = *p.BolusTime
	}
	return pump, nil
}

// InfusionYAML mirrors a user-defined Infusion for YAML decoding.
type InfusionYAML struct {
	Start      float64 `yaml:"start"`
	DosePerSec float64 `yaml:"dose_per_sec"`
	Duration   float64 `yaml:"duration"`
}

// TargetYAML mirrors Target for YAML decoding; optional fields fall back
// to the add_target() defaults (§6) when absent.
type TargetYAML struct {
	Start                float64  `yaml:"start"`
	Target               float64  `yaml:"target"`
	Duration             float64  `yaml:"duration"`
	Effect               string   `yaml:"effect"`
	CpLimit              *float64 `yaml:"cp_limit"`
	CpLimitDuration      *float64 `yaml:"cp_limit_duration"`
	CeBolusOnly          *bool    `yaml:"ce_bolus_only"`
	MaintenanceInfusions *bool    `yaml:"maintenance_infusions"`
}

func (t TargetYAML) toTarget() (Target, error) {
	target, err := NewTarget(t.Start, t.Target, t.Duration, EffectSite(t.Effect))
	if err != nil {
		return Target{}, err
	}
	if t.CpLimit != nil {
		target.CpLimit = *t.CpLimit
	}
	if t.CpLimitDuration != nil {
		target.CpLimitDuration = *t.CpLimitDuration
	}
	if t.CeBolusOnly != nil {
		target.CeBolusOnly = *t.CeBolusOnly
	}
	if t.MaintenanceInfusions != nil {
		target.MaintenanceInfusions = *t.MaintenanceInfusions
	}
	return target, nil
}

// LoadConfig decodes a scenario file with strict field checking: unknown
// keys fail the load instead of being silently ignored.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	return &cfg, nil
}

// BuildScheduler turns a decoded Config into a ready-to-run Scheduler.
func (c *Config) BuildScheduler() (*Scheduler, error) {
	coeffs, err := NewCoefficients(c.Model.toDrugModel())
	if err != nil {
		return nil, err
	}
	pump, err := c.Pump.toPumpConfig()
	if err != nil {
		return nil, err
	}

	userInfusions := make([]Infusion, 0, len(c.Infusions))
	for _, inf := range c.Infusions {
		built, err := NewInfusion(inf.Start, inf.DosePerSec, inf.Duration)
		if err != nil {
			return nil, err
		}
		userInfusions = append(userInfusions, built)
	}

	targets := make([]Target, 0, len(c.Targets))
	for _, t := range c.Targets {
		built, err := t.toTarget()
		if err != nil {
			return nil, err
		}
		targets = append(targets, built)
	}

	return NewScheduler(coeffs, pump, NewTargetList(targets...), userInfusions...), nil
}
