package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// applyEnv overrides fields from environment variables. Unset variables
// leave the current value alone; malformed ones are errors.
func (c *Config) applyEnv() error {
	if v, ok := lookup("PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Port = n
	}
	setString(&c.Assets.Root, "ASSET_ROOT")
	setString(&c.Art.Dir, "ART_DIR")
	setString(&c.Art.HighResURL, "ART_HIGHRES_URL")
	setString(&c.Art.StandardURL, "ART_STANDARD_URL")
	setString(&c.DataDir, "DATA_DIR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if err := setBool(&c.Art.PreferHighRes, "ART_PREFER_HIGHRES"); err != nil {
		return err
	}
	if err := setBool(&c.Assets.FallbackFonts, "FALLBACK_FONTS"); err != nil {
		return err
	}
	if v, ok := lookup("DOWNLOAD_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DOWNLOAD_TIMEOUT: %w", err)
		}
		c.Art.DownloadTimeout = d
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
