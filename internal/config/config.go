package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is read from config.yaml with environment overrides layered on
// top. A missing file is fine; every field has a default.
type Config struct {
	ServerPort   int    `yaml:"server_port"`
	WebDir       string `yaml:"web_dir"`
	ScheduleFile string `yaml:"schedule_file"`
	AdminSecret  string `yaml:"admin_secret"`
	Game         struct {
		InitialCash int64  `yaml:"initial_cash"`
		MaxPlayers  int    `yaml:"max_players"`
		WelcomeNews string `yaml:"welcome_news"`
	} `yaml:"game"`
}

const defaultWelcome = "Welcome to the Stock Trading Adventure! A new game is starting."

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if cfg.ServerPort == 0 {
		if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
			if v, _ := strconv.Atoi(p); v > 0 {
				cfg.ServerPort = v
			}
		}
		if cfg.ServerPort == 0 {
			cfg.ServerPort = 3000
		}
	}
	if s := strings.TrimSpace(os.Getenv("ADMIN_SECRET")); s != "" {
		cfg.AdminSecret = s
	}
	if cfg.AdminSecret == "" {
		cfg.AdminSecret = "gamemaster123"
	}
	if cfg.WebDir == "" {
		cfg.WebDir = "public"
	}
	if cfg.ScheduleFile == "" {
		cfg.ScheduleFile = "companies.xlsx"
	}
	if cfg.Game.InitialCash <= 0 {
		cfg.Game.InitialCash = 1_000_000
	}
	if cfg.Game.MaxPlayers <= 0 {
		cfg.Game.MaxPlayers = 20
	}
	if strings.TrimSpace(cfg.Game.WelcomeNews) == "" {
		cfg.Game.WelcomeNews = defaultWelcome
	}
	return cfg, nil
}
