package config

import (
	"encoding/json"
	"os"
	"time"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout is
// given in seconds so config files stay free of duration-string syntax.
type JsonConfig struct {
	DatabasePath        string `json:"database_path"`
	ProviderTimeoutSecs int64  `json:"provider_timeout_secs"`
	StoreWorkers        int64  `json:"store_workers"`
	LogLevel            string `json:"log_level"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag, when one is given. Only fields present in the file (i.e.
// non-zero after unmarshalling) are copied.
func parseJson(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ProviderTimeoutSecs > 0 {
		cfg.ProviderTimeout = time.Duration(jc.ProviderTimeoutSecs) * time.Second
	}
	if jc.StoreWorkers > 0 {
		cfg.StoreWorkers = jc.StoreWorkers
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
