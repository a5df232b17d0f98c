package inkwell

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration stored in TOML as a string such as "250ms".
type Duration struct {
	time.Duration
}

// Dur wraps d.
func Dur(d time.Duration) Duration {
	return Duration{d}
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Settings is the persisted configuration of the application.
type Settings struct {
	Display     DisplaySettings    `toml:"display"`
	Frontlight  FrontlightSettings `toml:"frontlight"`
	Wifi        bool               `toml:"wifi"`
	Screenshots string             `toml:"screenshots"`
	LogLevel    string             `toml:"log-level"`
	Timing      TimingSettings     `toml:"timing"`
	Gestures    GestureSettings    `toml:"gestures"`
	Emulator    EmulatorSettings   `toml:"emulator"`
}

type DisplaySettings struct {
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
	Rotation   int  `toml:"rotation"`
	Inverted   bool `toml:"inverted"`
	Monochrome bool `toml:"monochrome"`
}

type FrontlightSettings struct {
	Enabled bool        `toml:"enabled"`
	Levels  LightLevels `toml:"levels"`
}

// TimingSettings controls the periodic work of the UI loop.
type TimingSettings struct {
	// Poll bounds how long the loop blocks waiting for an event before it
	// drains the render queue.
	Poll              Duration `toml:"poll"`
	Clock             Duration `toml:"clock"`
	NotificationClose Duration `toml:"notification-close"`
	NetUpDelay        Duration `toml:"net-up-delay"`
	FrontlightRamp    Duration `toml:"frontlight-ramp"`
	FrontlightTick    Duration `toml:"frontlight-tick"`
}

type GestureSettings struct {
	// DeadZone is the distance in pixels a contact may travel and still
	// count as a tap or a hold.
	DeadZone int      `toml:"dead-zone"`
	Hold     Duration `toml:"hold"`
}

type EmulatorSettings struct {
	Scale       float64 `toml:"scale"`
	ShowFPS     bool    `toml:"show-fps"`
	MetricsAddr string  `toml:"metrics-addr"`
	// Latency is how long a simulated panel refresh takes.
	Latency Duration `toml:"latency"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Display: DisplaySettings{
			Width:  600,
			Height: 800,
		},
		Frontlight: FrontlightSettings{
			Levels: LightLevels{Intensity: 20, Warmth: 0},
		},
		Screenshots: "screenshots",
		LogLevel:    "info",
		Timing: TimingSettings{
			Poll:              Dur(20 * time.Millisecond),
			Clock:             Dur(time.Minute),
			NotificationClose: Dur(4 * time.Second),
			NetUpDelay:        Dur(2 * time.Second),
			FrontlightRamp:    Dur(600 * time.Millisecond),
			FrontlightTick:    Dur(50 * time.Millisecond),
		},
		Gestures: GestureSettings{
			DeadZone: 24,
			Hold:     Dur(600 * time.Millisecond),
		},
		Emulator: EmulatorSettings{
			Scale:   1,
			ShowFPS: false,
			Latency: Dur(120 * time.Millisecond),
		},
	}
}

// Validate reports the first setting that is out of range.
func (s *Settings) Validate() error {
	switch {
	case s.Display.Width <= 0 || s.Display.Height <= 0:
		return fmt.Errorf("display size %dx%d must be positive", s.Display.Width, s.Display.Height)
	case s.Display.Rotation < 0 || s.Display.Rotation > 3:
		return fmt.Errorf("display rotation %d must be in [0, 3]", s.Display.Rotation)
	case s.Timing.Poll.Duration <= 0:
		return errors.New("timing poll must be positive")
	case s.Timing.Clock.Duration <= 0:
		return errors.New("timing clock must be positive")
	case s.Timing.FrontlightTick.Duration <= 0:
		return errors.New("timing frontlight-tick must be positive")
	case s.Gestures.DeadZone < 0:
		return fmt.Errorf("gesture dead zone %d must not be negative", s.Gestures.DeadZone)
	case s.Emulator.Scale <= 0:
		return fmt.Errorf("emulator scale %g must be positive", s.Emulator.Scale)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return s.Frontlight.Levels.Validate()
}

// LoadSettings reads the settings stored at path. Keys missing from the file
// keep their default value; a missing file yields DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes s to path, creating the parent directory if needed.
func SaveSettings(path string, s Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
