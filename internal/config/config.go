package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

// Config carries everything outside the scenario file: which reasoning
// backend to use and how to render the run.
type Config struct {
	Mode Mode

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	// UseScripted forces the offline scripted deliberator even in gcp mode.
	UseScripted bool

	ShowThoughts bool
	LogFile      string

	// DeliberationTimeout bounds each reasoning call; zero disables it.
	DeliberationTimeout time.Duration
}

// Load reads configuration from ROOMCHAT_* environment variables with
// defaults suitable for local runs.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("ROOMCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", string(ModeLocal))
	v.SetDefault("gcp_project", "")
	v.SetDefault("gcp_location", "us-central1")
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("show_thoughts", false)
	v.SetDefault("log_file", "")
	v.SetDefault("deliberation_timeout", 60*time.Second)

	mode := ModeLocal
	if Mode(v.GetString("mode")) == ModeGCP {
		mode = ModeGCP
	}

	return &Config{
		Mode:                mode,
		GCPProjectID:        v.GetString("gcp_project"),
		GCPLocation:         v.GetString("gcp_location"),
		ModelName:           v.GetString("model_name"),
		UseScripted:         v.GetBool("use_scripted") || mode == ModeLocal,
		ShowThoughts:        v.GetBool("show_thoughts"),
		LogFile:             v.GetString("log_file"),
		DeliberationTimeout: v.GetDuration("deliberation_timeout"),
	}
}

// Validate fails fast on setups that would only break mid-run.
func (c *Config) Validate() error {
	if c.Mode == ModeGCP && !c.UseScripted && c.GCPProjectID == "" {
		return fmt.Errorf("%w: ROOMCHAT_GCP_PROJECT must be set in gcp mode", domain.ErrConfiguration)
	}
	return nil
}
