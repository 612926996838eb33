// rmqrgen writes rMQR codes as PNG images, terminal text or CBOR.
//
// Usage:
//
//	rmqrgen [flags] [string ...]
//
// If no string is given, data is read from standard input and the final
// newline is stripped.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/render"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
	"github.com/ericlevine/rmqrgo/rmqrcode/encoder"
)

const configEnv = "RMQRGEN_CONFIG"

var outputTypes = []string{"png", "utf8", "ascii", "cbor"}

// usageError marks a bad flag, argument or configuration file.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return 2 }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "rmqrgen: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := defaultConfig()
	var configPath, outputPath string

	flagSet := pflag.NewFlagSet("rmqrgen", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", os.Getenv(configEnv), "YAML defaults file (env "+configEnv+")")
	flagSet.StringVarP(&cfg.Level, "level", "l", cfg.Level, "error correction level, M or H")
	flagSet.StringVarP(&cfg.Version, "version", "v", "", `force a symbol version such as "R11x43"`)
	flagSet.IntVar(&cfg.MaxWidth, "max-width", 0, "largest symbol width in modules (0: any)")
	flagSet.IntVar(&cfg.MaxHeight, "max-height", 0, "largest symbol height in modules (0: any)")
	flagSet.StringVarP(&cfg.Type, "type", "t", "", "output type, one of: "+strings.Join(outputTypes, ", ")+
		"; default utf8 when writing to a terminal, otherwise png")
	flagSet.StringVarP(&outputPath, "output", "o", "", `output file, or "-" for standard output`)
	flagSet.IntVarP(&cfg.Scale, "scale", "s", cfg.Scale, "image pixels per module (png only)")
	flagSet.IntVarP(&cfg.Margin, "margin", "m", cfg.Margin, "quiet zone in modules")
	flagSet.BoolVarP(&cfg.Invert, "invert", "i", false, "swap dark and light modules")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return &usageError{err: err}
	}

	if configPath != "" {
		// The file fills in every setting the command line left alone.
		fileCfg := defaultConfig()
		if err := loadConfigFile(configPath, &fileCfg); err != nil {
			return &usageError{err: err}
		}
		mergeConfig(&cfg, fileCfg, flagSet)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return usagef("invalid log level %q", cfg.LogLevel)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	ecLevel, err := decoder.ParseECLevel(cfg.Level)
	if err != nil {
		return usagef("invalid error correction level %q", cfg.Level)
	}
	if cfg.Type == "" {
		cfg.Type = "png"
		if (outputPath == "" || outputPath == "-") && isTerminal(stdout) {
			cfg.Type = "utf8"
		}
	}
	if !validType(cfg.Type) {
		return usagef("invalid output type %q", cfg.Type)
	}
	opts := render.Options{Scale: cfg.Scale, QuietZone: cfg.Margin, Invert: cfg.Invert}
	if opts.Scale < 1 || opts.QuietZone < 0 {
		return usagef("invalid scale %d or margin %d", opts.Scale, opts.QuietZone)
	}

	payload, err := readPayload(flagSet.Args(), stdin)
	if err != nil {
		return err
	}

	hint := &encoder.SizeHint{Version: cfg.Version, MaxWidth: cfg.MaxWidth, MaxHeight: cfg.MaxHeight}
	symbol, err := encoder.Encode(payload, ecLevel, hint)
	if err != nil {
		if errors.Is(err, rmqrgo.ErrInvalidConfiguration) {
			return &usageError{err: err}
		}
		return err
	}
	logger.Info("encoded symbol",
		"version", symbol.Version.Name,
		"level", symbol.ECLevel.String(),
		"segments", len(symbol.Segments),
		"penalty", symbol.Penalty)
	for _, seg := range symbol.Segments {
		logger.Debug("segment", "mode", seg.Mode.String(), "characters", seg.CharacterCount())
	}

	out := stdout
	if outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := write(out, cfg.Type, symbol, opts); err != nil {
		return err
	}
	if f, ok := out.(*os.File); ok && out != stdout {
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("wrote output", "path", outputPath, "type", cfg.Type)
	}
	return nil
}

// mergeConfig copies file settings into cfg for every flag the command
// line did not set.
func mergeConfig(cfg *config, file config, flagSet *pflag.FlagSet) {
	set := func(name string) bool { return flagSet.Changed(name) }
	if !set("level") {
		cfg.Level = file.Level
	}
	if !set("version") {
		cfg.Version = file.Version
	}
	if !set("max-width") {
		cfg.MaxWidth = file.MaxWidth
	}
	if !set("max-height") {
		cfg.MaxHeight = file.MaxHeight
	}
	if !set("type") {
		cfg.Type = file.Type
	}
	if !set("scale") {
		cfg.Scale = file.Scale
	}
	if !set("margin") {
		cfg.Margin = file.Margin
	}
	if !set("invert") {
		cfg.Invert = file.Invert
	}
	if !set("log-level") {
		cfg.LogLevel = file.LogLevel
	}
}

func validType(t string) bool {
	for _, v := range outputTypes {
		if t == v {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func readPayload(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) != 0 {
		return []byte(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s, _ = strings.CutSuffix(s, "\n")
	return []byte(s), nil
}

func write(w io.Writer, outputType string, symbol *encoder.Symbol, opts render.Options) error {
	switch outputType {
	case "png":
		return render.PNG(w, symbol.Matrix, opts)
	case "utf8":
		return render.Terminal(w, symbol.Matrix, opts)
	case "ascii":
		return render.ASCII(w, symbol.Matrix, opts)
	case "cbor":
		return render.CBOR(w, symbol.Matrix, render.Metadata{
			Version: symbol.Version.Name,
			ECLevel: symbol.ECLevel.String(),
		})
	}
	return usagef("invalid output type %q", outputType)
}
