/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dc0d/onexit"
	"github.com/docker/go-units"
	"github.com/launix-de/memjit/itable"
	"github.com/launix-de/memjit/trace"
	"github.com/pkg/errors"
)

type SettingsT struct {
	TraceItable   bool   // print every built itable
	Trace         bool   // write a chrome trace of linking and liveness
	TraceCompress bool   // xz compress the chrome trace
	TraceDir      string // where trace files go
	ItableArena   string // byte budget for itable candidates per class, e.g. "256KiB"
	LinkWorkers   int    // parallel linkers, 0 = one per class
	ResolveCache  int    // entries of the method resolution cache
}

var Settings SettingsT = SettingsT{false, false, false, "", "256KiB", 4, 1024}

var keys = []string{"TraceItable", "Trace", "TraceCompress", "TraceDir", "ItableArena", "LinkWorkers", "ResolveCache"}

const filename = "settings.json"

// Load reads <dir>/settings.json into Settings; a missing file keeps the defaults.
func Load(dir string) error {
	b, err := os.ReadFile(filepath.Join(dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read settings")
	}
	var s SettingsT = Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "parse settings")
	}
	if _, err := units.RAMInBytes(s.ItableArena); err != nil {
		return errors.Wrapf(err, "setting ItableArena")
	}
	Settings = s
	return nil
}

func Save(dir string) error {
	b, err := json.MarshalIndent(Settings, "", "\t")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.Wrap(err, "create data directory")
	}
	return errors.Wrap(os.WriteFile(filepath.Join(dir, filename), b, 0640), "write settings")
}

// ArenaBytes is the parsed ItableArena budget.
func ArenaBytes() int64 {
	n, err := units.RAMInBytes(Settings.ItableArena)
	if err != nil {
		panic("invalid ItableArena setting: " + Settings.ItableArena)
	}
	return n
}

// call this after you filled Settings
func InitSettings(dataDir string) error {
	if err := trace.SetTrace(Settings.Trace, Settings.TraceDir, Settings.TraceCompress); err != nil {
		return err
	}
	onexit.Register(func() { trace.SetTrace(false, "", false) }) // close trace file on exit
	if dataDir != "" {
		onexit.Register(func() {
			if err := Save(dataDir); err != nil {
				fmt.Println("error saving settings:", err)
			}
		})
	}
	return nil
}

func get(key string) (string, error) {
	switch key {
	case "TraceItable":
		return strconv.FormatBool(Settings.TraceItable), nil
	case "Trace":
		return strconv.FormatBool(Settings.Trace), nil
	case "TraceCompress":
		return strconv.FormatBool(Settings.TraceCompress), nil
	case "TraceDir":
		return Settings.TraceDir, nil
	case "ItableArena":
		return Settings.ItableArena, nil
	case "LinkWorkers":
		return strconv.Itoa(Settings.LinkWorkers), nil
	case "ResolveCache":
		return strconv.Itoa(Settings.ResolveCache), nil
	}
	return "", errors.Errorf("unknown setting: %s", key)
}

func set(key, value string) (err error) {
	var b bool
	var n int
	switch key {
	case "TraceItable":
		b, err = strconv.ParseBool(value)
		if err == nil {
			Settings.TraceItable = b
		}
	case "Trace":
		if b, err = strconv.ParseBool(value); err == nil {
			Settings.Trace = b
			err = trace.SetTrace(b, Settings.TraceDir, Settings.TraceCompress)
		}
	case "TraceCompress":
		if b, err = strconv.ParseBool(value); err == nil {
			Settings.TraceCompress = b
		}
	case "TraceDir":
		Settings.TraceDir = value
	case "ItableArena":
		if _, err = units.RAMInBytes(value); err == nil {
			Settings.ItableArena = value
		}
	case "LinkWorkers":
		if n, err = strconv.Atoi(value); err == nil {
			if n < 0 {
				return errors.New("LinkWorkers must not be negative")
			}
			Settings.LinkWorkers = n
		}
	case "ResolveCache":
		if n, err = strconv.Atoi(value); err == nil {
			if n <= 0 {
				return errors.New("ResolveCache must be positive")
			}
			Settings.ResolveCache = n
		}
	default:
		return errors.Errorf("unknown setting: %s", key)
	}
	return errors.Wrapf(err, "setting %s", key)
}

// Change reads or updates settings at runtime: no arguments lists all
// settings, one returns a value, two set it.
func Change(a ...string) (string, error) {
	switch len(a) {
	case 0:
		var b strings.Builder
		for _, k := range keys {
			v, _ := get(k)
			fmt.Fprintf(&b, "%s=%s\n", k, v)
		}
		return b.String(), nil
	case 1:
		return get(a[0])
	case 2:
		if err := set(a[0], a[1]); err != nil {
			return "", err
		}
		return get(a[0])
	}
	return "", errors.New("settings: too many arguments")
}

// ItableConfig is the itable builder configuration the settings describe.
func ItableConfig() itable.Config {
	return itable.Config{
		Trace:      Settings.TraceItable,
		ArenaBytes: ArenaBytes(),
		Tracefile:  trace.Default,
	}
}
