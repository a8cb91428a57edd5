package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariable returns the trimmed value of key, or fallback when it is unset or blank
func GetEnvironmentVariable(key string, fallback string) string {
	value := strings.TrimSpace(GetEnvironmentVariables()[key])

	if value == "" {
		return fallback
	}

	return value
}
