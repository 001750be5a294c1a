// Package config loads the application configuration: server address,
// data directory, clinic identity and rendering options. Values come
// from an optional labreport.yaml plus LABREPORT_* environment
// overrides; defaults reproduce the original desktop deployment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

type Clinic struct {
	Name     string   `mapstructure:"name"`
	Subtitle string   `mapstructure:"subtitle"`
	Phones   []string `mapstructure:"phones"`
}

type Config struct {
	Addr        string `mapstructure:"addr"`
	DataDir     string `mapstructure:"data_dir"`
	OpenBrowser bool   `mapstructure:"open_browser"`
	PDFFontPath string `mapstructure:"pdf_font_path"`
	Clinic      Clinic `mapstructure:"clinic"`
}

// Load reads the configuration. With an empty path it searches the
// working directory for labreport.yaml and tolerates its absence; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LABREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("labreport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "127.0.0.1:5000")
	v.SetDefault("data_dir", ".")
	v.SetDefault("open_browser", true)
	v.SetDefault("clinic.name", "PREMIUM MEDI / პრემიუმ მედი")
	v.SetDefault("clinic.subtitle", "საოჯახო მედიცინის ცენტრი")
	v.SetDefault("clinic.phones", []string{"558-27-55-51", "577-03-97-70"})
}

// DBPath is the patient index file inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "patients_db.json")
}

// DocsDir is the directory of generated report files.
func (c *Config) DocsDir() string {
	return filepath.Join(c.DataDir, "saved_docs")
}

// DomainClinic maps the configured identity into the domain model.
func (c *Config) DomainClinic() domain.Clinic {
	return domain.Clinic{
		Name:     c.Clinic.Name,
		Subtitle: c.Clinic.Subtitle,
		Phones:   c.Clinic.Phones,
	}
}
