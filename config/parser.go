package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "STORYCHECK"

var (
	ErrNotFound  = errors.New("configuration file not found")
	ErrMalformed = errors.New("malformed configuration file")
)

// Loader reads Settings from the given path
type Loader func(path string) (*Settings, error)

// Parse generates a new Settings instance starting from the JSON
// document at path. Missing fields read as empty strings and
// STORYCHECK_APPCONFIG_* variables override document values.
func Parse(path string) (*Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	} else if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	return &Settings{
		AppConfig: AppConfig{
			OpenAIApiKey:      v.GetString("appconfig.openaiapikey"),
			OpenAIEndpoint:    v.GetString("appconfig.openaiendpoint"),
			AzureSpeechKey:    v.GetString("appconfig.azurespeechkey"),
			AzureSpeechRegion: v.GetString("appconfig.azurespeechregion"),
			UploadConfig: UploadConfig{
				BilibiliCookie: v.GetString("appconfig.uploadconfig.bilibilicookie"),
			},
		},
	}, nil
}
