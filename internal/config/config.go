package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/youruser/cardsmith/internal/logging"
)

type Config struct {
	Port    int        `yaml:"port" json:"port"`
	DataDir string     `yaml:"data_dir" json:"data_dir"`
	Assets  AssetsConf `yaml:"assets" json:"assets"`
	Art     ArtConf    `yaml:"art" json:"art"`
	Log     LogConf    `yaml:"log" json:"log"`
	Compose Compose    `yaml:"compose" json:"compose"`
}

type AssetsConf struct {
	Root string `yaml:"root" json:"root"`
	// FallbackFonts substitutes the embedded Go fonts for missing font files.
	FallbackFonts bool `yaml:"fallback_fonts" json:"fallback_fonts"`
}

type ArtConf struct {
	Dir             string        `yaml:"dir" json:"dir"`
	HighResURL      string        `yaml:"highres_url" json:"highres_url"`
	StandardURL     string        `yaml:"standard_url" json:"standard_url"`
	PreferHighRes   bool          `yaml:"prefer_highres" json:"prefer_highres"`
	DownloadTimeout time.Duration `yaml:"download_timeout" json:"download_timeout"`
}

type LogConf struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type Compose struct {
	// SpellTrapLabelColor is "black" or "white".
	SpellTrapLabelColor string  `yaml:"spell_trap_label_color" json:"spell_trap_label_color"`
	NameSize            float64 `yaml:"name_size" json:"name_size"`
}

const defaultArtURL = "https://images.ygoprodeck.com/images/cards_cropped/%d.jpg"

func Default() Config {
	return Config{
		Port:    8080,
		DataDir: "data",
		Assets:  AssetsConf{Root: "textures/modular"},
		Art: ArtConf{
			Dir:             "art",
			HighResURL:      defaultArtURL,
			StandardURL:     defaultArtURL,
			PreferHighRes:   true,
			DownloadTimeout: 15 * time.Second,
		},
		Log:     LogConf{Level: "info", Format: "text"},
		Compose: Compose{SpellTrapLabelColor: "black", NameSize: 114},
	}
}

// Load builds the configuration from defaults, the YAML file at path (when
// path is not empty) and environment overrides, in that order.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Assets.Root == "" {
		errs = append(errs, errors.New("assets.root is empty"))
	}
	if c.Art.Dir == "" {
		errs = append(errs, errors.New("art.dir is empty"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is empty"))
	}
	if c.Art.DownloadTimeout < 0 {
		errs = append(errs, errors.New("art.download_timeout is negative"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Compose.SpellTrapLabelColor) {
	case "", "black", "white":
	default:
		errs = append(errs, fmt.Errorf("compose.spell_trap_label_color %q is not black or white", c.Compose.SpellTrapLabelColor))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// LabelColor resolves SpellTrapLabelColor.
func (c Compose) LabelColor() color.Color {
	if strings.EqualFold(c.SpellTrapLabelColor, "white") {
		return color.White
	}
	return color.Black
}
