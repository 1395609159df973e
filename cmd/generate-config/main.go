package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"president-sim/internal/config"
)

// prints the default configuration, a starting point for config.yaml
func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
