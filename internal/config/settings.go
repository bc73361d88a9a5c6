package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	Demo          bool
	Addr          string
	SampleRate    float64
	CenterFreq    float64
	Gain          string
	BlockSize     int
	ModelPath     string
	ScalerPath    string
	MeasuredPower float64
	PathLossExp   float64
	MetricsAddr   string
	LogFile       string
}

// Defaults returns the compiled-in settings.
func Defaults() Settings {
	return Settings{
		Addr:          TCPAddr,
		SampleRate:    SampleRate,
		CenterFreq:    CenterFreq,
		Gain:          Gain,
		BlockSize:     BlockSize,
		ModelPath:     ModelPath,
		ScalerPath:    ScalerPath,
		MeasuredPower: MeasuredPower,
		PathLossExp:   PathLossExp,
	}
}

// Load resolves settings from flags, an optional sdr-radar.toml and the
// defaults, in that order of precedence. An explicit configPath must exist;
// the search-path file is optional.
func Load(configPath string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("demo", d.Demo)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("sample-rate", d.SampleRate)
	v.SetDefault("freq", d.CenterFreq)
	v.SetDefault("gain", d.Gain)
	v.SetDefault("block-size", d.BlockSize)
	v.SetDefault("model", d.ModelPath)
	v.SetDefault("scaler", d.ScalerPath)
	v.SetDefault("measured-power", d.MeasuredPower)
	v.SetDefault("path-loss", d.PathLossExp)
	v.SetDefault("metrics-addr", d.MetricsAddr)
	v.SetDefault("log-file", d.LogFile)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("sdr-radar")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sdr-radar"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	s := Settings{
		Demo:          v.GetBool("demo"),
		Addr:          v.GetString("addr"),
		SampleRate:    v.GetFloat64("sample-rate"),
		CenterFreq:    v.GetFloat64("freq"),
		Gain:          v.GetString("gain"),
		BlockSize:     v.GetInt("block-size"),
		ModelPath:     v.GetString("model"),
		ScalerPath:    v.GetString("scaler"),
		MeasuredPower: v.GetFloat64("measured-power"),
		PathLossExp:   v.GetFloat64("path-loss"),
		MetricsAddr:   v.GetString("metrics-addr"),
		LogFile:       v.GetString("log-file"),
	}
	return s, s.Validate()
}

// Validate rejects settings the scan loop cannot run with.
func (s Settings) Validate() error {
	// the tuner takes both as uint32 Hz
	if !inTunerRange(s.SampleRate) {
		return fmt.Errorf("sample rate must be in (0, %d] Hz, got %v", uint32(math.MaxUint32), s.SampleRate)
	}
	if !inTunerRange(s.CenterFreq) {
		return fmt.Errorf("center frequency must be in (0, %d] Hz, got %v", uint32(math.MaxUint32), s.CenterFreq)
	}
	if s.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %d", s.BlockSize)
	}
	if !(s.PathLossExp > 0) || math.IsInf(s.PathLossExp, 0) {
		return fmt.Errorf("path loss exponent must be positive, got %v", s.PathLossExp)
	}
	return nil
}

func inTunerRange(hz float64) bool {
	return hz > 0 && hz <= math.MaxUint32
}
