package sim

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds generator settings: the per-day count ranges each phase draws
// from, the anonymous-actor ratio and the random seed.
type Config struct {
	Days int   `yaml:"days" env:"SIM_DAYS" env-default:"30"`
	Seed int64 `yaml:"seed" env:"SIM_SEED"` // 0 = derive from wall clock

	AnonymousRatio float64 `yaml:"anonymous_ratio" env:"SIM_ANONYMOUS_RATIO" env-default:"0.5"`

	RegistrationsMin int `yaml:"registrations_min" env:"SIM_REGISTRATIONS_MIN" env-default:"7"`
	RegistrationsMax int `yaml:"registrations_max" env:"SIM_REGISTRATIONS_MAX" env-default:"15"`
	LoginsMin        int `yaml:"logins_min"        env:"SIM_LOGINS_MIN"        env-default:"6"`
	LoginsMax        int `yaml:"logins_max"        env:"SIM_LOGINS_MAX"        env-default:"8"`
	TopicErrorsMin   int `yaml:"topic_errors_min"  env:"SIM_TOPIC_ERRORS_MIN"  env-default:"2"`
	TopicErrorsMax   int `yaml:"topic_errors_max"  env:"SIM_TOPIC_ERRORS_MAX"  env-default:"5"`
	TopicsMin        int `yaml:"topics_min"        env:"SIM_TOPICS_MIN"        env-default:"7"`
	TopicsMax        int `yaml:"topics_max"        env:"SIM_TOPICS_MAX"        env-default:"17"`
	ActivityMin      int `yaml:"activity_min"      env:"SIM_ACTIVITY_MIN"      env-default:"35"`
	ActivityMax      int `yaml:"activity_max"      env:"SIM_ACTIVITY_MAX"      env-default:"55"`
	TopicDeletesMin  int `yaml:"topic_deletes_min" env:"SIM_TOPIC_DELETES_MIN" env-default:"5"`
	TopicDeletesMax  int `yaml:"topic_deletes_max" env:"SIM_TOPIC_DELETES_MAX" env-default:"7"`
	LogoutsMin       int `yaml:"logouts_min"       env:"SIM_LOGOUTS_MIN"       env-default:"5"`
	LogoutsMax       int `yaml:"logouts_max"       env:"SIM_LOGOUTS_MAX"       env-default:"8"`
}

// LoadConfig reads generator configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("sim config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("sim config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("sim config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim config: %w", err)
	}

	return &cfg, nil
}

// Validate fails fast on inconsistent ranges so that no phase ever sees a
// min > max configuration mid-run.
func (c *Config) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be >= 1 (got %d)", c.Days)
	}
	if c.AnonymousRatio < 0 || c.AnonymousRatio > 1 {
		return fmt.Errorf("anonymous_ratio must be in [0,1] (got %v)", c.AnonymousRatio)
	}

	ranges := []struct {
		name     string
		min, max int
	}{
		{"registrations", c.RegistrationsMin, c.RegistrationsMax},
		{"logins", c.LoginsMin, c.LoginsMax},
		{"topic_errors", c.TopicErrorsMin, c.TopicErrorsMax},
		{"topics", c.TopicsMin, c.TopicsMax},
		{"activity", c.ActivityMin, c.ActivityMax},
		{"topic_deletes", c.TopicDeletesMin, c.TopicDeletesMax},
		{"logouts", c.LogoutsMin, c.LogoutsMax},
	}
	for _, r := range ranges {
		if r.min < 0 {
			return fmt.Errorf("%s range: min must be >= 0 (got %d)", r.name, r.min)
		}
		if r.min > r.max {
			return fmt.Errorf("%s range: min %d exceeds max %d", r.name, r.min, r.max)
		}
	}

	return nil
}
