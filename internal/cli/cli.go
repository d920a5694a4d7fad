// Package cli implements command line interface for subnetear.
package cli

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/subnetear/subnetear/internal/export"
	"github.com/subnetear/subnetear/internal/render"
)

// getZapConfig decodes zap logging configuration from
// configuration file.
func getZapConfig(v *viper.Viper) (zap.Config, error) {
	// server.log
	type cfgWrapper struct {
		Server struct {
			Log zap.Config `yaml:"log"`
		} `yaml:"server"`
	}

	// Default logging configuration.
	d := zap.Config{
		DisableCaller:     true,
		DisableStacktrace: true,
		Level:             zap.NewAtomicLevel(),
		Development:       false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.EpochTimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if v.GetBool("server.development") {
		// If in development mode, default to development logger
		// configuration.
		d = zap.NewDevelopmentConfig()
	}
	if v.ConfigFileUsed() == "" {
		return d, nil
	}

	// Parsing yaml directly.
	raw := &cfgWrapper{}
	raw.Server.Log = d
	f, openErr := os.Open(v.ConfigFileUsed())
	if openErr != nil {
		return d, openErr
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Println("failed to close config file:", closeErr)
		}
	}()
	buf, readErr := ioutil.ReadAll(f)
	if readErr != nil {
		return d, readErr
	}
	return raw.Server.Log, yaml.Unmarshal(buf, &raw)
}

func getLogger(v *viper.Viper) *zap.Logger {
	logCfg, logErr := getZapConfig(v)
	if logErr != nil {
		panic(logErr)
	}
	l, buildErr := logCfg.Build()
	if buildErr != nil {
		panic(buildErr)
	}
	return l
}

func mustBind(err error) {
	if err != nil {
		log.Fatalln("failed to bind:", err)
	}
}

// TODO: Remove global state.
var cfgFile string

func initConfigCommon(v *viper.Viper) {
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalln("failed to find home directory:", err)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/subnetear/")
	v.AddConfigPath(home)
}

func initConfig(v *viper.Viper) {
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		initConfigCommon(v)
		v.SetConfigName("subnetear")
		v.SetConfigType("yaml")
	}
	cfgErr := v.ReadInConfig()
	if _, ok := cfgErr.(viper.ConfigFileNotFoundError); ok {
		cfgErr = v.ReadConfig(strings.NewReader(defaultConfigFileContent))
	}
	if cfgErr != nil {
		log.Fatalln("failed to read config:", cfgErr)
	}
	if strings.Split(v.GetString("version"), ".")[0] != "1" {
		log.Fatalln("unsupported config file version:", v.GetString("version"))
	}
}

const keyPrometheusActive = "server.prometheus.active"

func initViper(v *viper.Viper) {
	v.SetDefault("version", "1")
	v.SetDefault("display.color", true)
	v.SetDefault("display.limit", 64)
	v.SetDefault(keyPrometheusActive, true)
}

// printerConfig derives presentation options from configuration. Formatting
// stays explicit configuration, the engine never sees it.
func printerConfig(v *viper.Viper) render.Config {
	return render.Config{
		Color: v.GetBool("display.color") && !v.GetBool("display.nocolor"),
		Limit: v.GetInt("display.limit"),
	}
}

// exportWriter builds the export writer from configuration, falling back to
// $HOME/Downloads when no directory is set.
func exportWriter(v *viper.Viper) (*export.Writer, error) {
	dir := v.GetString("export.dir")
	if dir == "" {
		var err error
		if dir, err = export.DefaultDir(); err != nil {
			return nil, err
		}
	}
	return export.NewWriter(dir), nil
}

// Execute starts root command.
func Execute() {
	v := viper.GetViper()
	initViper(v)
	rootCmd := getRoot(v)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
