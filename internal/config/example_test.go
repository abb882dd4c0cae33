package config_test

import (
	"fmt"
	"os"

	"github.com/actionsum/auraswitch/internal/config"
)

// Example of creating a default configuration
func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("Poll Interval:", cfg.Controller.PollInterval)
	fmt.Println("Process:", cfg.Aura.ProcessName)
	// Output:
	// Poll Interval: 5s
	// Process: GHelper
}

// Example of pointing the daemon at a different G-Helper config
func ExampleLoadFromEnv() {
	os.Setenv(config.EnvGHelperConfig, "/tmp/ghelper/config.json")
	defer os.Unsetenv(config.EnvGHelperConfig)

	cfg := config.Default()
	config.LoadFromEnv(cfg)
	fmt.Println("Config Path:", cfg.Aura.ConfigPath)
	// Output:
	// Config Path: /tmp/ghelper/config.json
}

// Example of validating configuration
func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Aura.ConfigPath = "/tmp/ghelper/config.json"

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	} else {
		fmt.Println("Configuration is valid")
	}

	cfg.Aura.ProcessName = ""
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid
	// G-Helper process name cannot be empty
}
