/*
 * Copyright (C) 2020-2022, IrineSistiana
 *
 * This file is part of pubsuffix.
 *
 * pubsuffix is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * pubsuffix is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package suffixcfg loads the YAML configuration an embedding program
// uses to build a suffix.Matcher: where the rule files live, how to
// log, and under what namespace to register metrics.
package suffixcfg

import (
	"fmt"
	"io"
	"os"

	"github.com/IrineSistiana/pubsuffix/mlog"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk schema for a pubsuffix deployment.
type Config struct {
	// Sources are rule file paths, concatenated in order and merged
	// by set union, per spec.md §6.1.
	Sources []string `yaml:"sources"`

	Log mlog.LogConfig `yaml:"log"`

	// MetricsNamespace, if non-empty, is passed to metrics.NewCollector.
	MetricsNamespace string `yaml:"metrics_namespace"`
}

// LoadConfig reads and unmarshals a Config from path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	c := new(Config)
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return c, nil
}

// Open opens every configured source file in order, calling f with
// each open handle. Open closes each file itself once f returns; f
// must not close what it's given.
func (c *Config) Open(f func(io.Reader) error) error {
	for _, path := range c.Sources {
		if err := openOne(path, f); err != nil {
			return fmt.Errorf("failed to open rule source %q: %w", path, err)
		}
	}
	return nil
}

func openOne(path string, f func(io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return f(file)
}
