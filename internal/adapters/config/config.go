package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Badsnus/qrgen/internal/adapters/fetcher"
	"github.com/Badsnus/qrgen/pkg/logger"
	"github.com/Badsnus/qrgen/pkg/qrcode"
	"github.com/spf13/viper"
)

type Config struct {
	Logger logger.Config
	Fetch  fetcher.Config
	Render Render
}

// Render holds the pipeline constants that may be tuned without code changes.
type Render struct {
	Scale         int
	Border        int
	CornerRadius  float64
	BlendWeight   float64
	MinContrast   float64
	LabelFontSize float64
	FontPath      string
}

func setDefaults() {
	viper.SetDefault("settings.debug", false)
	viper.SetDefault("settings.log-to-file", false)
	viper.SetDefault("settings.logs-dir", "logs")
	viper.SetDefault("settings.timezone", "")

	viper.SetDefault("fetch.timeout", fetcher.DefaultTimeout)
	viper.SetDefault("fetch.max-bytes", fetcher.DefaultMaxBytes)
	viper.SetDefault("fetch.user-agent", fetcher.DefaultUserAgent)

	viper.SetDefault("render.scale", qrcode.DefaultScale)
	viper.SetDefault("render.border", qrcode.DefaultBorder)
	viper.SetDefault("render.corner-radius", qrcode.DefaultCornerRadius)
	viper.SetDefault("render.blend-weight", qrcode.DefaultBlendWeight)
	viper.SetDefault("render.min-contrast", qrcode.DefaultMinContrast)
	viper.SetDefault("render.label-font-size", qrcode.DefaultLabelFontSize)
	viper.SetDefault("render.font-path", "")
}

func initConfig(path string) error {
	viper.Reset()
	setDefaults()

	viper.SetEnvPrefix("QRGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// the config file is optional when not asked for explicitly
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Get loads configuration from path (or ./config.yaml when path is empty and
// the file exists), QRGEN_* environment variables and built-in defaults.
func Get(path string) (*Config, error) {
	if err := initConfig(path); err != nil {
		return nil, err
	}

	var loc *time.Location
	if tz := viper.GetString("settings.timezone"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid settings.timezone %q: %w", tz, err)
		}
		loc = l
	}

	cfg := &Config{
		Logger: logger.Config{
			Debug:        viper.GetBool("settings.debug"),
			TimeLocation: loc,
			LogToFile:    viper.GetBool("settings.log-to-file"),
			LogsDir:      viper.GetString("settings.logs-dir"),
			Prefix:       "[qrgen]",
		},
		Fetch: fetcher.Config{
			Timeout:   viper.GetDuration("fetch.timeout"),
			MaxBytes:  viper.GetInt64("fetch.max-bytes"),
			UserAgent: viper.GetString("fetch.user-agent"),
		},
		Render: Render{
			Scale:         viper.GetInt("render.scale"),
			Border:        viper.GetInt("render.border"),
			CornerRadius:  viper.GetFloat64("render.corner-radius"),
			BlendWeight:   viper.GetFloat64("render.blend-weight"),
			MinContrast:   viper.GetFloat64("render.min-contrast"),
			LabelFontSize: viper.GetFloat64("render.label-font-size"),
			FontPath:      viper.GetString("render.font-path"),
		},
	}

	if cfg.Render.BlendWeight <= 0 || cfg.Render.BlendWeight > 1 {
		return nil, fmt.Errorf("render.blend-weight must be in (0,1], got %v", cfg.Render.BlendWeight)
	}
	if cfg.Render.MinContrast <= 0 || cfg.Render.MinContrast >= 1 {
		return nil, fmt.Errorf("render.min-contrast must be in (0,1), got %v", cfg.Render.MinContrast)
	}
	if cfg.Render.Scale <= 0 || cfg.Render.Border <= 0 {
		return nil, fmt.Errorf("render.scale and render.border must be positive")
	}

	return cfg, nil
}
