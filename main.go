package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sdr-radar.klederson.com/internal/app"
	"sdr-radar.klederson.com/internal/config"
	"sdr-radar.klederson.com/internal/detect"
	"sdr-radar.klederson.com/internal/logging"
	"sdr-radar.klederson.com/internal/metrics"
	"sdr-radar.klederson.com/internal/scan"
	"sdr-radar.klederson.com/internal/sdr"
)

var flagConfig string

func main() {
	rootCmd := &cobra.Command{
		Use:   "sdr-radar",
		Short: "SDR Radar - RTL-SDR human presence detector with radar display",
		Long: `SDR Radar reads IQ samples from an RTL-SDR dongle through rtl_tcp,
scores each block's spectrum with a pre-trained classifier and shows
the result on a circular ASCII radar.

Start rtl_tcp first (rtl_tcp -a 127.0.0.1) or use --demo to run on
synthetic samples without hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	d := config.Defaults()
	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Config file (default ./sdr-radar.toml or ~/.config/sdr-radar/sdr-radar.toml)")
	f.Bool("demo", d.Demo, "Run on synthetic samples (no SDR required)")
	f.String("addr", d.Addr, "rtl_tcp server address")
	f.Float64("sample-rate", d.SampleRate, "Sample rate in Hz")
	f.Float64("freq", d.CenterFreq, "Center frequency in Hz")
	f.String("gain", d.Gain, `Tuner gain: "auto" or tenths of a dB`)
	f.Int("block-size", d.BlockSize, "Complex samples per scan iteration")
	f.String("model", d.ModelPath, "Classifier model (JSON)")
	f.String("scaler", d.ScalerPath, "Feature scaler (JSON)")
	f.Float64("measured-power", d.MeasuredPower, "RSSI at 1 meter")
	f.Float64("path-loss", d.PathLossExp, "Path loss exponent")
	f.String("metrics-addr", d.MetricsAddr, "Serve Prometheus metrics on this address (disabled if empty)")
	f.String("log-file", d.LogFile, "Write diagnostics to this file (muted if empty)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return err
	}

	if settings.LogFile != "" {
		f, err := tea.LogToFile(settings.LogFile, "sdr-radar")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logging.SetOutput(f, "sdr-radar ")
	}

	inference, err := detect.LoadInferenceContext(settings.ModelPath, settings.ScalerPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "The classifier artifacts could not be loaded.")
		fmt.Fprintln(os.Stderr, "Point --model and --scaler at the JSON files, e.g.")
		fmt.Fprintln(os.Stderr, "  ./sdr-radar --model models/human_detection_model.json --scaler models/scaler.json")
		return err
	}

	source, err := openSource(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Could not open the RTL-SDR through rtl_tcp.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  rtl_tcp -a 127.0.0.1 &  ./sdr-radar")
		fmt.Fprintln(os.Stderr, "  ./sdr-radar --addr host:1234")
		fmt.Fprintln(os.Stderr, "  ./sdr-radar --demo    (demo mode, no hardware needed)")
		return err
	}
	defer func() {
		if err := source.Close(); err != nil {
			logging.Logf("close %s: %v", source.Label(), err)
		}
	}()
	logging.Logf("source %s ready at %.0f S/s", source.Label(), source.SampleRate())

	if settings.MetricsAddr != "" {
		srv := metrics.NewServer(settings.MetricsAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Logf("metrics server: %v", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	latest := &scan.Latest{}
	loop := scan.NewLoop(source, inference, latest)
	loop.BlockSize = settings.BlockSize
	loop.MeasuredPower = settings.MeasuredPower
	loop.PathLossExp = settings.PathLossExp

	model := app.New(latest, app.Options{
		Source:     source.Label(),
		SampleRate: source.SampleRate(),
		CenterFreq: settings.CenterFreq,
		BlockSize:  settings.BlockSize,
		Trees:      inference.Trees(),
		Stop:       cancel,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFPS(config.TargetFPS),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := loop.Run(ctx)
		if err != nil {
			logging.Logf("scan stopped: %v", err)
		}
		p.Send(app.ScanStoppedMsg{Err: err})
	}()

	_, err = p.Run()
	cancel()
	wg.Wait()
	return err
}

// openSource returns the demo source or a configured rtl_tcp connection.
func openSource(s config.Settings) (sdr.Source, error) {
	if s.Demo {
		return sdr.NewMockSource(s.SampleRate, time.Now().UnixNano()), nil
	}
	gain, err := sdr.ParseGain(s.Gain)
	if err != nil {
		return nil, err
	}
	return sdr.DialRTLTCP(sdr.RTLTCPOptions{
		Addr:       s.Addr,
		SampleRate: s.SampleRate,
		CenterFreq: s.CenterFreq,
		Gain:       gain,
	})
}
