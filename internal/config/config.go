package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"taskcal/internal/calendar"
)

const (
	DefaultConfigFileName = "config.toml"
	AppDirName            = "taskcal"
	ConfigEnvVar          = "TASKCAL_CONFIG"

	DefaultPanelWidth = 40
	MinPanelWidth     = 24
	MaxPanelWidth     = 60
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	AddCategory    string `toml:"add_category"`
	DeleteCategory string `toml:"delete_category"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Left           string `toml:"left"`
	Right          string `toml:"right"`
	Toggle         string `toml:"toggle"`
	Grab           string `toml:"grab"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	NextTask       string `toml:"next_task"`
	Focus          string `toml:"focus"`
	Prev           string `toml:"prev"`
	Next           string `toml:"next"`
	Today          string `toml:"today"`
	ViewDay        string `toml:"view_day"`
	ViewWeek       string `toml:"view_week"`
	ViewMonth      string `toml:"view_month"`
	Widen          string `toml:"widen"`
	Narrow         string `toml:"narrow"`
}

type Config struct {
	DefaultView calendar.ViewMode `toml:"default_view"`
	PanelWidth  int               `toml:"panel_width"`
	LogPath     string            `toml:"log_path"`
	LogLevel    string            `toml:"log_level"`
	Keys        Keymap            `toml:"keys"`
}

// ResolveConfigPath prefers $TASKCAL_CONFIG, then the user config dir.
func ResolveConfigPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = calendar.ViewWeek
	}
	cfg.PanelWidth = ClampPanelWidth(cfg.PanelWidth)
	cfg.Keys = cfg.Keys.withDefaults(Default().Keys)
	return cfg, nil
}

// ClampPanelWidth keeps the category panel within usable bounds; zero
// means the default.
func ClampPanelWidth(w int) int {
	switch {
	case w == 0:
		return DefaultPanelWidth
	case w < MinPanelWidth:
		return MinPanelWidth
	case w > MaxPanelWidth:
		return MaxPanelWidth
	default:
		return w
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		DefaultView: calendar.ViewWeek,
		PanelWidth:  DefaultPanelWidth,
		LogLevel:    "info",
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			AddCategory:    "c",
			DeleteCategory: "D",
			Up:             "k",
			Down:           "j",
			Left:           "h",
			Right:          "l",
			Toggle:         " ",
			Grab:           "m",
			Confirm:        "enter",
			Cancel:         "esc",
			NextTask:       "n",
			Focus:          "tab",
			Prev:           "[",
			Next:           "]",
			Today:          "t",
			ViewDay:        "1",
			ViewWeek:       "2",
			ViewMonth:      "3",
			Widen:          "<",
			Narrow:         ">",
		},
	}
}

// withDefaults fills keys a partial [keys] table left empty.
func (k Keymap) withDefaults(d Keymap) Keymap {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Add, d.Add)
	fill(&k.AddCategory, d.AddCategory)
	fill(&k.DeleteCategory, d.DeleteCategory)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Left, d.Left)
	fill(&k.Right, d.Right)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Grab, d.Grab)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	fill(&k.NextTask, d.NextTask)
	fill(&k.Focus, d.Focus)
	fill(&k.Prev, d.Prev)
	fill(&k.Next, d.Next)
	fill(&k.Today, d.Today)
	fill(&k.ViewDay, d.ViewDay)
	fill(&k.ViewWeek, d.ViewWeek)
	fill(&k.ViewMonth, d.ViewMonth)
	fill(&k.Widen, d.Widen)
	fill(&k.Narrow, d.Narrow)
	return k
}
