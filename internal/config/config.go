package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host       string     `koanf:"host"`
	Frontend   Frontend   `koanf:"frontend"`
	Database   Database   `koanf:"db"`
	Calendar   Calendar   `koanf:"calendar"`
	Importer   Importer   `koanf:"importer"`
	Recurrence Recurrence `koanf:"recurrence"`
	Cleanup    Cleanup    `koanf:"cleanup"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Path string `koanf:"path"`
}

// Calendar describes the visible time window of the day view and the
// vertical scale used by the layout engine.
type Calendar struct {
	StartHour     int     `koanf:"starthour"`
	EndHour       int     `koanf:"endhour"`
	PixelsPerHour float64 `koanf:"pixelsperhour"`
}

type Importer struct {
	// Strategy is the default parse strategy: daytime, block or grid.
	Strategy string `koanf:"strategy"`
	// RecurrenceWeeks is how many weekly occurrences an import creates per
	// detected entry.
	RecurrenceWeeks int `koanf:"recurrenceweeks"`
	// DayLineMaxLength guards against titles that merely mention a weekday.
	DayLineMaxLength int `koanf:"daylinemaxlength"`
	// ExtraDayKeywords extends the built-in day name table,
	// e.g. {"montag": 1}. Weekday numbering is 1=Monday .. 7=Sunday.
	ExtraDayKeywords map[string]int `koanf:"extradaykeywords"`
}

// Recurrence holds the horizons used by recurring manual saves.
type Recurrence struct {
	Weeks       int `koanf:"weeks"`
	Days        int `koanf:"days"`
	WeekdayDays int `koanf:"weekdaydays"`
}

type Cleanup struct {
	// Schedule is a cron expression; empty disables the periodic sweep.
	Schedule string `koanf:"schedule"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Path: "dersplan.db",
		},
		Calendar: Calendar{
			StartHour:     8,
			EndHour:       21,
			PixelsPerHour: 60,
		},
		Importer: Importer{
			Strategy:         "daytime",
			RecurrenceWeeks:  4,
			DayLineMaxLength: 20,
		},
		Recurrence: Recurrence{
			Weeks:       16,
			Days:        30,
			WeekdayDays: 28,
		},
		Cleanup: Cleanup{
			Schedule: "0 3 * * *",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "DERSPLAN_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "DERSPLAN_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
