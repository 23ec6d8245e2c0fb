package sim

import (
	"fmt"
	"math"
)

// ThroughputConfig parameterizes the single-queue capacity model.
// Rates are configured per hour and converted to per-tick draws internally,
// so the same scenario file reads naturally regardless of tick granularity.
// Immutable once handed to NewThroughputModel.
type ThroughputConfig struct {
	Hours       float64 `yaml:"hours"`        // simulation horizon
	TickMinutes int     `yaml:"tick_minutes"` // discrete time step in minutes

	SLAHours float64 `yaml:"sla_hours"` // max dwell still counted on-time

	ArrivalMeanPerHour float64 `yaml:"arrival_mean_per_hour"` // orders/hour ~ Normal(mean, std)
	ArrivalStdPerHour  float64 `yaml:"arrival_std_per_hour"`
	PickMeanPerHour    float64 `yaml:"capacity_mean_per_hour"` // picking capacity, orders/hour
	PickStdPerHour     float64 `yaml:"capacity_std_per_hour"`

	// Seed for the instance-owned random source. nil draws the seed from
	// the wall clock, giving up reproducibility.
	Seed *int64 `yaml:"seed"`
}

// DefaultThroughputConfig mirrors the stock 24-hour, 300-orders/hour run.
func DefaultThroughputConfig() ThroughputConfig {
	seed := int64(42)
	return ThroughputConfig{
		Hours:              24.0,
		TickMinutes:        1,
		SLAHours:           4.0,
		ArrivalMeanPerHour: 300.0,
		ArrivalStdPerHour:  60.0,
		PickMeanPerHour:    300.0,
		PickStdPerHour:     60.0,
		Seed:               &seed,
	}
}

// Validate reports the first fatal configuration error, before any tick runs.
func (c ThroughputConfig) Validate() error {
	if c.Hours <= 0 {
		return fmt.Errorf("hours must be positive, got %v", c.Hours)
	}
	if c.TickMinutes <= 0 {
		return fmt.Errorf("tick_minutes must be positive, got %d", c.TickMinutes)
	}
	if c.SLAHours < 0 {
		return fmt.Errorf("sla_hours must be non-negative, got %v", c.SLAHours)
	}
	if c.ArrivalMeanPerHour < 0 || c.ArrivalStdPerHour < 0 {
		return fmt.Errorf("arrival rate mean/std must be non-negative, got mean=%v std=%v",
			c.ArrivalMeanPerHour, c.ArrivalStdPerHour)
	}
	if c.PickMeanPerHour < 0 || c.PickStdPerHour < 0 {
		return fmt.Errorf("capacity rate mean/std must be non-negative, got mean=%v std=%v",
			c.PickMeanPerHour, c.PickStdPerHour)
	}
	return nil
}

// TotalTicks is the closed loop bound: the horizon expressed in ticks.
func (c ThroughputConfig) TotalTicks() int {
	totalMinutes := int(math.Round(c.Hours * 60))
	return (totalMinutes + c.TickMinutes - 1) / c.TickMinutes
}

// StageDurations fixes the service time, in tick-units, of each working stage.
type StageDurations struct {
	Pick    int `yaml:"pick_ticks"`
	Staging int `yaml:"staging_ticks"`
	Ship    int `yaml:"ship_ticks"`
}

// For returns the configured duration of a working stage.
func (d StageDurations) For(s Stage) int {
	switch s {
	case StagePick:
		return d.Pick
	case StageStaging:
		return d.Staging
	case StageShip:
		return d.Ship
	}
	return 0
}

// LifecycleConfig parameterizes the worker-pool stage scheduler. Unlike the
// throughput model it is tick-granular: arrivals are a per-tick Bernoulli
// trial and the SLA is counted in ticks. Immutable once handed to
// NewLifecycleModel.
type LifecycleConfig struct {
	Ticks       int `yaml:"ticks"`        // simulation horizon in ticks
	TickMinutes int `yaml:"tick_minutes"` // wall-clock minutes one tick represents

	Workers            int     `yaml:"workers"`
	ArrivalProbability float64 `yaml:"arrival_prob"` // chance of one new order per tick

	Durations StageDurations `yaml:",inline"`

	SLATicks int `yaml:"sla_ticks"` // max dwell, in ticks, still counted on-time

	// Seed for the instance-owned random source; nil means wall clock.
	Seed *int64 `yaml:"seed"`
}

// DefaultLifecycleConfig mirrors the stock six-hour board run.
func DefaultLifecycleConfig() LifecycleConfig {
	seed := int64(42)
	return LifecycleConfig{
		Ticks:              360,
		TickMinutes:        1,
		Workers:            3,
		ArrivalProbability: 0.3,
		Durations:          StageDurations{Pick: 5, Staging: 3, Ship: 4},
		SLATicks:           60,
		Seed:               &seed,
	}
}

// Validate reports the first fatal configuration error, before any tick runs.
func (c LifecycleConfig) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.TickMinutes <= 0 {
		return fmt.Errorf("tick_minutes must be positive, got %d", c.TickMinutes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.ArrivalProbability < 0 || c.ArrivalProbability > 1 {
		return fmt.Errorf("arrival_prob must be in [0,1], got %v", c.ArrivalProbability)
	}
	if c.Durations.Pick <= 0 || c.Durations.Staging <= 0 || c.Durations.Ship <= 0 {
		return fmt.Errorf("stage durations must be positive, got pick=%d staging=%d ship=%d",
			c.Durations.Pick, c.Durations.Staging, c.Durations.Ship)
	}
	if c.SLATicks < 0 {
		return fmt.Errorf("sla_ticks must be non-negative, got %d", c.SLATicks)
	}
	return nil
}
