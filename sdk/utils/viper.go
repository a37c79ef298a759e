// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/ini.v1"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/config"
)

// EnvMirrorPrefix lets CI secrets be exported with a prefix:
// MS_MEDIASHUTTLE_USER is read as MEDIASHUTTLE_USER unless the latter is set.
const EnvMirrorPrefix = "MS"

// Config holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive, masked by ConfigSummary
// - bind: "false" to NOT bind from env (we still can set defaults)
type Config struct {
	MediaShuttleUser     string `vkey:"mediashuttle_user"      env:"MEDIASHUTTLE_USER"      persist:"true"`
	MediaShuttlePassword string `vkey:"mediashuttle_password"  env:"MEDIASHUTTLE_PASSWORD"  persist:"true"  secret:"true"`
	PlatformAPIEndpoint  string `vkey:"platform_api_endpoint"  env:"PLATFORM_API_ENDPOINT"  persist:"true"  default:"https://platform-api-service.services.cloud.signiant.com"`
	MessagingServiceURL  string `vkey:"messaging_service_url"  env:"MESSAGING_SERVICE_URL"  persist:"true"  default:"https://messaging-config-service.services.cloud.signiant.com"`
	DefaultAccount       string `vkey:"default_account"        env:"MEDIASHUTTLE_ACCOUNT"   persist:"true"`
	DefaultPortal        string `vkey:"default_portal"         env:"MEDIASHUTTLE_PORTAL"    persist:"true"`
	DefaultDestination   string `vkey:"default_destination"    env:"MEDIASHUTTLE_DEST"      persist:"true"  default:"/"`
	UpdatedEnvironment   string `vkey:"updated_environment"    env:"UPDATED_ENVIRONMENT"    persist:"true"  bind:"false"`
	CurrentEnvironment   string `vkey:"current_environment"    env:"CURRENT_ENVIRONMENT"    persist:"false"`
}

// resolveEnvName: --env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return "default"
}

// envName returns the environment variable bound to a Config field.
func envName(f reflect.StructField) string {
	if env := f.Tag.Get("env"); env != "" {
		return env
	}
	return strings.ToUpper(strings.ReplaceAll(f.Tag.Get("vkey"), ".", "_"))
}

// mirrorPrefix copies PREFIX_FOO into FOO for the bound variables of Config.
func mirrorPrefix(prefix string) {
	if prefix == "" {
		return
	}
	upPrefix := strings.ToUpper(prefix) + "_"
	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("vkey") == "" || f.Tag.Get("bind") == "false" {
			continue
		}
		name := envName(f)
		if os.Getenv(name) != "" {
			continue
		}
		if val, ok := os.LookupEnv(upPrefix + name); ok && val != "" {
			_ = os.Setenv(name, val)
		}
	}
}

// Bind env for all fields of Config using struct tags.
func BindEnvFromStruct(prefix string) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	mirrorPrefix(prefix)

	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}

		if def := f.Tag.Get("default"); def != "" && !viper.IsSet(key) {
			viper.SetDefault(key, def)
		}

		// if false not to bind
		if f.Tag.Get("bind") == "false" {
			continue
		}

		_ = viper.BindEnv(key, envName(f))
	}
}

func persistedKeys(sec *ini.Section) {
	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		val := viper.GetString(key)
		if val == "" {
			continue
		}
		sec.Key(key).SetValue(val)
	}
}

// Write a new INI with only fields marked persist:"true".
func WriteIniFromStruct(iniPath, envName string) error {
	cfg := ini.Empty()
	cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	sec := cfg.Section(envName)
	persistedKeys(sec)
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	return saveIni(cfg, iniPath)
}

// Update or create INI section from current Viper values (persist:"true" only).
func UpdateIniFromStruct(iniPath, envName string) error {
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return WriteIniFromStruct(iniPath, envName)
	}
	sec := cfg.Section(envName)
	persistedKeys(sec)

	if !cfg.Section("DEFAULT").HasKey(CurrentEnvironment) {
		cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	}
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	return saveIni(cfg, iniPath)
}

// the INI holds a password: owner-only
func saveIni(cfg *ini.File, iniPath string) error {
	if err := cfg.SaveTo(iniPath); err != nil {
		return err
	}
	return os.Chmod(iniPath, 0o600)
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV can still override on Get().
func loadIniSectionIntoViper(cfg *ini.File, env string) error {
	log := zap.L().Named("config")
	def := cfg.Section("DEFAULT")
	selected := def
	if env != "" && cfg.HasSection(env) {
		selected = cfg.Section(env)
		log.Debug("using env", zap.String("env", env))
	} else if env == "" || strings.EqualFold(env, "DEFAULT") {
		log.Debug("using env", zap.String("env", "DEFAULT"))
	} else {
		log.Warn("env not found, falling back to [DEFAULT]", zap.String("env", env))
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != nil && selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.ReadConfig(&buf)
}

// RegisterIniCfgWithViper:
// 1) load .env (if any) and bind ENV from struct
// 2) load the INI when present; a missing INI means ENV-only mode
// 3) load active section into Viper and set current_environment
func RegisterIniCfgWithViper(iniPath string, optionalEnv ...string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	BindEnvFromStruct(EnvMirrorPrefix)

	env := resolveEnvName(optionalEnv...)

	cfg, err := ini.Load(iniPath)
	if err != nil {
		zap.L().Named("config").Debug("INI not found, using environment variables only", zap.String("path", iniPath))
		viper.Set(CurrentEnvironment, env)
		return nil
	}

	// active env: --env > DEFAULT.current_environment > default
	if env == "default" {
		if v := cfg.Section("DEFAULT").Key(CurrentEnvironment).String(); v != "" {
			env = v
		}
	}

	if err := loadIniSectionIntoViper(cfg, env); err != nil {
		return fmt.Errorf("failed to load INI into viper: %w", err)
	}
	viper.Set(CurrentEnvironment, env)
	return nil
}

// PlatformConfigFromViper builds the SDK config out of the loaded keys.
func PlatformConfigFromViper() (config.PlatformConfig, error) {
	conf := config.PlatformConfig{
		Endpoints: config.Endpoints{
			PlatformAPIEndpoint: viper.GetString(PlatformAPIEndpoint),
			MessagingServiceURL: viper.GetString(MessagingServiceURL),
		},
		Username: viper.GetString(MsUser),
		Password: viper.GetString(MsPassword),
	}
	if conf.Username == "" || conf.Password == "" {
		return conf, fmt.Errorf("missing %s or %s: set them in env or run 'mscli configure'", MsUser, MsPassword)
	}
	return conf, nil
}

// ConfigSummary returns the persisted keys currently set, secrets masked.
func ConfigSummary() map[string]string {
	out := map[string]string{}
	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		key := f.Tag.Get("vkey")
		val := viper.GetString(key)
		if key == "" || val == "" {
			continue
		}
		if f.Tag.Get("secret") == "true" {
			val = "********"
		}
		out[key] = val
	}
	return out
}

// SortedKeys is a helper for printing ConfigSummary.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
