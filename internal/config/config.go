package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/keymenu/internal/app"
	"github.com/atomicstack/keymenu/internal/ui"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the TOML file that was consulted, empty when none applies.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	flagShowTyped    = "show-typed"
	flagFooter       = "footer"
	flagBackend      = "backend"
	flagPollInterval = "poll-interval"
	flagWidth        = "width"
	flagHeight       = "height"
	flagTitle        = "title"
	flagCopy         = "copy"
	flagTrace        = "trace"
	flagLogFile      = "log-file"
	flagConfig       = "config"
)

const (
	envShowTyped    = "KEYMENU_SHOW_TYPED"
	envShowFooter   = "KEYMENU_FOOTER"
	envBackend      = "KEYMENU_BACKEND"
	envPollInterval = "KEYMENU_POLL_INTERVAL"
	envWidth        = "KEYMENU_WIDTH"
	envHeight       = "KEYMENU_HEIGHT"
	envTitle        = "KEYMENU_TITLE"
	envCopy         = "KEYMENU_COPY"
	envTrace        = "KEYMENU_TRACE"
	envLogFile      = "KEYMENU_LOG_FILE"
	envConfig       = "KEYMENU_CONFIG"
)

const defaultTitle = "Matches"

// fileConfig mirrors the TOML file. Pointer fields distinguish unset keys
// from zero values.
type fileConfig struct {
	ShowTyped    *bool   `toml:"show_typed"`
	Footer       *bool   `toml:"footer"`
	Backend      *string `toml:"backend"`
	PollInterval *string `toml:"poll_interval"`
	Width        *int    `toml:"width"`
	Height       *int    `toml:"height"`
	Title        *string `toml:"title"`
	Copy         *bool   `toml:"copy"`
	Trace        *bool   `toml:"trace"`
	LogFile      *string `toml:"log_file"`
}

// AddFlags registers every configuration flag on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.Bool(flagShowTyped, true, "show the keys typed so far above the table")
	fs.Bool(flagFooter, false, "enable footer hint row (disabled by default)")
	fs.String(flagBackend, app.BackendTea, "terminal backend: tea or tcell")
	fs.Duration(flagPollInterval, ui.DefaultPollInterval, "maximum wait for input before redrawing")
	fs.Int(flagWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(flagHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.String(flagTitle, defaultTitle, "title shown above the table")
	fs.Bool(flagCopy, false, "also copy the selected output to the clipboard")
	fs.Bool(flagTrace, false, "enable verbose JSON trace logging")
	fs.String(flagLogFile, "", "path to the log file")
	fs.String(flagConfig, "", "path to a TOML config file (default $XDG_CONFIG_HOME/keymenu/config.toml)")
}

// LoadArgs parses args on a fresh flag set; tests use it to supply specific
// args and environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("keymenu", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs, fs.Args(), environ)
}

// FromFlags resolves configuration from a parsed flag set, the environment
// and the config file. An explicitly set flag wins over the environment,
// which wins over the file, which wins over the flag default.
func FromFlags(fs *pflag.FlagSet, args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := configPath(fs, env)
	var file fileConfig
	if path != "" {
		if err := readTOML(path, &file); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	r := resolver{fs: fs, env: env}
	interval, err := r.duration(flagPollInterval, envPollInterval, file.PollInterval)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			ShowTyped:    r.boolean(flagShowTyped, envShowTyped, file.ShowTyped),
			ShowFooter:   r.boolean(flagFooter, envShowFooter, file.Footer),
			Backend:      strings.ToLower(strings.TrimSpace(r.str(flagBackend, envBackend, file.Backend))),
			PollInterval: interval,
			Width:        r.integer(flagWidth, envWidth, file.Width),
			Height:       r.integer(flagHeight, envHeight, file.Height),
			Title:        r.str(flagTitle, envTitle, file.Title),
			Copy:         r.boolean(flagCopy, envCopy, file.Copy),
		},
		Logging: Logging{
			FilePath: r.str(flagLogFile, envLogFile, file.LogFile),
			Trace:    r.boolean(flagTrace, envTrace, file.Trace),
		},
		File: path,
		Args: append([]string(nil), args...),
	}
	if len(args) > 0 && args[0] != "-" {
		cfg.App.Input = args[0]
	}
	cfg.Flags = map[string]string{
		"showTyped":    strconv.FormatBool(cfg.App.ShowTyped),
		"footer":       strconv.FormatBool(cfg.App.ShowFooter),
		"backend":      cfg.App.Backend,
		"pollInterval": cfg.App.PollInterval.String(),
		"width":        strconv.Itoa(cfg.App.Width),
		"height":       strconv.Itoa(cfg.App.Height),
		"title":        cfg.App.Title,
		"copy":         strconv.FormatBool(cfg.App.Copy),
		"config":       path,
	}
	return cfg, nil
}

// Validate ensures the resolved configuration is usable.
func Validate(cfg Config) error {
	switch cfg.App.Backend {
	case app.BackendTea, app.BackendTcell:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", cfg.App.Backend, app.BackendTea, app.BackendTcell)
	}
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be > 0 (got %s)", cfg.App.PollInterval)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}

// DefaultPath returns the config file consulted when none is named.
func DefaultPath(env map[string]string) string {
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, "keymenu", "config.toml")
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", "keymenu", "config.toml")
	}
	return ""
}

func configPath(fs *pflag.FlagSet, env map[string]string) string {
	if fs.Changed(flagConfig) {
		v, _ := fs.GetString(flagConfig)
		return expandHome(v, env)
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return expandHome(v, env)
	}
	return DefaultPath(env)
}

func expandHome(path string, env map[string]string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~/") {
		if home := env["HOME"]; home != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// readTOML decodes path into out. A missing or blank file leaves out
// untouched.
func readTOML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// resolver applies flag > env > file > default precedence. Environment values
// that do not parse are ignored.
type resolver struct {
	fs  *pflag.FlagSet
	env map[string]string
}

func (r resolver) envValue(key string) (string, bool) {
	v, ok := r.env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (r resolver) boolean(flag, envKey string, file *bool) bool {
	if !r.fs.Changed(flag) {
		if v, ok := r.envValue(envKey); ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				return parsed
			}
		}
		if file != nil {
			return *file
		}
	}
	v, _ := r.fs.GetBool(flag)
	return v
}

func (r resolver) integer(flag, envKey string, file *int) int {
	if !r.fs.Changed(flag) {
		if v, ok := r.envValue(envKey); ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				return parsed
			}
		}
		if file != nil {
			return *file
		}
	}
	v, _ := r.fs.GetInt(flag)
	return v
}

func (r resolver) str(flag, envKey string, file *string) string {
	if !r.fs.Changed(flag) {
		if v, ok := r.envValue(envKey); ok {
			return v
		}
		if file != nil {
			return *file
		}
	}
	v, _ := r.fs.GetString(flag)
	return v
}

func (r resolver) duration(flag, envKey string, file *string) (time.Duration, error) {
	if !r.fs.Changed(flag) {
		if v, ok := r.envValue(envKey); ok {
			if parsed, err := time.ParseDuration(v); err == nil {
				return parsed, nil
			}
		}
		if file != nil {
			parsed, err := time.ParseDuration(strings.TrimSpace(*file))
			if err != nil {
				return 0, fmt.Errorf("poll_interval: %w", err)
			}
			return parsed, nil
		}
	}
	v, _ := r.fs.GetDuration(flag)
	return v, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}
