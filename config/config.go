// Package config loads the YAML configuration shared by the server and the
// command-line client.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
	Site   SiteConfig   `yaml:"site"`
}

type ServerConfig struct {
	// Host is the interface to bind. The default exposes the server on the
	// local network.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type ClientConfig struct {
	BaseURL           string   `yaml:"base_url"`
	TransitionTimeout Duration `yaml:"transition_timeout"`
}

type SiteConfig struct {
	Name string `yaml:"name"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func Default() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 5173},
		Client: ClientConfig{
			BaseURL:           "http://localhost:5173/",
			TransitionTimeout: Duration(300 * time.Millisecond),
		},
		Site: SiteConfig{Name: "Polleria Montiel"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Client.BaseURL != "" {
		u, err := url.Parse(c.Client.BaseURL)
		if err != nil || !u.IsAbs() {
			errs = append(errs, fmt.Errorf("client.base_url %q is not an absolute URL", c.Client.BaseURL))
		}
	}
	if c.Client.TransitionTimeout < 0 {
		errs = append(errs, errors.New("client.transition_timeout is negative"))
	}
	if c.Site.Name == "" {
		errs = append(errs, errors.New("site.name is empty"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address of the server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
