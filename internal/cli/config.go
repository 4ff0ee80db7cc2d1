package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configBaseName = "idemcheck"

	envPrefix = "IDEMCHECK"

	outputFlagName   = "output"
	noSaveFlagName   = "no-save"
	parallelFlagName = "parallel"
	strictFlagName   = "strict"
	attemptsFlagName = "attempts"
	delayFlagName    = "delay"
	timeoutFlagName  = "timeout"
	formatFlagName   = "format"
	casesFlagName    = "cases"
	debugFlagName    = "debug"

	defaultReportsDir = ".idemcheck/reports"
	defaultParallel   = 1
	defaultFormat     = "pretty"
	defaultTimeout    = 30 * time.Second
)

// init runs before any command builds its flags, so viper-backed defaults
// are already populated when flag definitions read them.
func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(parallelFlagName, defaultParallel)
	viper.SetDefault(formatFlagName, defaultFormat)
	viper.SetDefault(timeoutFlagName, defaultTimeout)

	// Missing config file is fine; only surface real parse errors.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
	}
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values
// feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}
