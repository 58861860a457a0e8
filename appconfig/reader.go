package appconfig

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/spf13/viper"
)

const (
	jsonConfigType = "json"
	yamlConfigType = "yaml"

	remoteConfigTimeout = 10 * time.Second
)

var templateVariablePattern = regexp.MustCompile(`\$\{env\.[\w_]+(?:\|[^\}]*)?\}`)

//Read reads config from configSource that might be HTTP URL, path to YAML/JSON file or plain JSON string
//replaces all ${env.VAR} placeholders with OS variables
//configSource might be overridden by "config_location" ENV variable. Empty source means env and defaults only
func Read(configSource string) error {
	viper.AutomaticEnv()

	//support OS env variables as upper case and underscore divided variables e.g. REDSHIFT_DOMAIN as redshift.domain
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	//overridden configuration from ENV
	if overriddenConfigLocation := viper.GetString("config_location"); overriddenConfigLocation != "" {
		configSource = overriddenConfigLocation
	}
	if configSource == "" {
		return nil
	}

	content, configType, err := load(configSource)
	if err != nil {
		return err
	}

	viper.SetConfigType(configType)
	if err := viper.ReadConfig(bytes.NewBuffer(content)); err != nil {
		return fmt.Errorf("Error reading/parsing config from %s: %v", configSource, err)
	}

	//resolve ${env.VAR} placeholders from config values
	for _, k := range viper.AllKeys() {
		value, ok := viper.Get(k).(string)
		if !ok || !templateVariablePattern.MatchString(value) {
			continue
		}

		var resolveErr error
		resolved := templateVariablePattern.ReplaceAllStringFunc(value, func(expression string) string {
			envValue, err := resolvePlaceholder(expression)
			if err != nil && resolveErr == nil {
				resolveErr = fmt.Errorf("Error resolving %s config value: %v", k, err)
			}
			return envValue
		})
		if resolveErr != nil {
			return resolveErr
		}

		viper.Set(k, resolved)
	}

	return nil
}

func load(configSource string) ([]byte, string, error) {
	if strings.HasPrefix(configSource, "{") && strings.HasSuffix(configSource, "}") {
		return []byte(configSource), jsonConfigType, nil
	}

	if strings.HasPrefix(configSource, "http://") || strings.HasPrefix(configSource, "https://") {
		ctx, cancel := context.WithTimeout(context.Background(), remoteConfigTimeout)
		defer cancel()

		buffer := &bytes.Buffer{}
		if err := requests.URL(configSource).ToBytesBuffer(buffer).Fetch(ctx); err != nil {
			return nil, "", fmt.Errorf("Error loading config from %s: %v", configSource, err)
		}
		return buffer.Bytes(), configType(configSource), nil
	}

	content, err := os.ReadFile(configSource)
	if err != nil {
		return nil, "", fmt.Errorf("Error reading config file %s: %v", configSource, err)
	}

	return content, configType(configSource), nil
}

func configType(location string) string {
	switch strings.ToLower(filepath.Ext(strings.SplitN(location, "?", 2)[0])) {
	case ".yaml", ".yml":
		return yamlConfigType
	default:
		return jsonConfigType
	}
}

//resolvePlaceholder supports alternatives: ${env.VAR1|env.VAR2|default_value}
func resolvePlaceholder(value string) (string, error) {
	envExpression := strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}")

	var varsNotFound []string
	for _, expressionValue := range strings.Split(envExpression, "|") {
		if !strings.HasPrefix(expressionValue, "env.") {
			//constant
			return expressionValue, nil
		}

		envVarName := strings.TrimPrefix(expressionValue, "env.")
		if envVarValue := os.Getenv(envVarName); envVarValue != "" {
			return envVarValue, nil
		}
		varsNotFound = append(varsNotFound, envVarName)
	}

	if len(varsNotFound) == 1 {
		return "", fmt.Errorf("mandatory env variable was not found: %s", varsNotFound[0])
	}

	return "", fmt.Errorf("none of env variables [%s] were found. Please set any", strings.Join(varsNotFound, " or "))
}
