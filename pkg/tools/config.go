package tools

import "strings"

// LoadConfig reads a yaml or json config file into v depending on the
// file extension. Yaml is the default for unknown extensions.
func LoadConfig(filename string, v interface{}) error {
	if strings.HasSuffix(filename, ".json") {
		return UnmarshalFileJson(filename, v)
	}

	return UnmarshalFileYaml(filename, v)
}
