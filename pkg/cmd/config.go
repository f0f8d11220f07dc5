package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// initConfig loads optional host configuration: --config if given,
// else ./.sheetrc.yaml or ./sheet.yaml in the working directory. A
// missing file is not an error; a malformed one is reported and
// ignored, since config only pre-seeds convenience defaults.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".sheetrc")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			viper.SetConfigName("sheet")
			err = viper.ReadInConfig()
		}
		if err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				fmt.Fprintln(os.Stderr, errorStyle.Render("warning:"), "reading config:", err)
			}
		}
	}
}

// configuredInputs returns the `inputs:` section of the loaded config
// as raw string values, keyed by input name.
func configuredInputs() map[string]string {
	raw := viper.GetStringMapString("inputs")
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// replPrompt, replHistoryFile, and replNoBannerConfigured read REPL
// preferences from the `repl:` section of the loaded config, used as
// fallbacks when the corresponding flag was not set explicitly.
func replPrompt() string {
	if p := viper.GetString("repl.prompt"); p != "" {
		return p
	}
	return "sheet> "
}

func replHistoryFile() string {
	return viper.GetString("repl.history")
}

func replNoBannerConfigured() bool {
	return viper.GetBool("repl.no_banner")
}
