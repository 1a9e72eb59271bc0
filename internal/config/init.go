package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
)

const exampleHeader = `# exportreadme configuration.
# Every key is optional; EXPORTREADME_TARGET_PREFIX, EXPORTREADME_LOG_LEVEL and
# EXPORTREADME_LOG_FORMAT override the values below.
`

// Init writes an example configuration file. An existing file is only replaced when
// force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return foundationerrors.ConfigError("configuration file already exists (use --force to overwrite)").
			AtPath(path).
			Build()
	}

	atomic := true
	example := Default()
	example.Output.Atomic = &atomic
	example.Watch.Debounce = defaultDebounce.String()

	data, err := yaml.Marshal(example)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to render example configuration").
			Fatal().
			Build()
	}

	content := exampleHeader + string(data)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write configuration file").
			Fatal().
			AtPath(path).
			Build()
	}
	return nil
}

// String renders cfg as YAML for debug output.
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unrenderable config: %v>", err)
	}
	return string(data)
}
