package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.MaxImageSide < 1 {
		return errors.New("output.max_image_side must be a positive pixel count")
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return errors.New("output.jpeg_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if len(c.Catalog.ValidCountries) == 0 {
		return errors.New("catalog.valid_countries must list at least one country")
	}
	valid := make(map[string]struct{}, len(c.Catalog.ValidCountries))
	for _, country := range c.Catalog.ValidCountries {
		if country == "" {
			return errors.New("catalog.valid_countries must not contain empty entries")
		}
		valid[country] = struct{}{}
	}
	for alias, target := range c.Catalog.CountryAliases {
		if _, ok := valid[target]; !ok {
			return fmt.Errorf("catalog.country_aliases: alias %q maps to unknown country %q", alias, target)
		}
	}
	for country := range c.Catalog.Organizations {
		if _, ok := valid[country]; !ok {
			return fmt.Errorf("catalog.organizations: country %q is not in valid_countries", country)
		}
	}
	if len(c.Catalog.ImageExts) == 0 {
		return errors.New("catalog.image_extensions must list at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
