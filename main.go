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
/*
	memjit: x86-64 JIT backend core, live intervals and interface dispatch tables

*/
package main

import "os"
import "fmt"
import "flag"
import "time"
import "syscall"
import "crypto/rand"
import "os/signal"
import "runtime/pprof"
import "github.com/google/uuid"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/memjit/classpath"
import "github.com/launix-de/memjit/settings"
import "github.com/launix-de/memjit/shell"
import "github.com/launix-de/memjit/trace"

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

var registry *classpath.Registry
var basepath string

// watch reloads a class hierarchy whenever the file changes on disk
func watch(filename string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-watcher.Events:
				// flush all other events
				for {
					time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
					select {
					case <-watcher.Events:
						// ignore
					default:
						goto to_reread
					}
				}
			to_reread:
				if names, err := registry.LoadFile(filename); err != nil {
					fmt.Println("reload", filename+":", err)
				} else {
					fmt.Println("reloaded", len(names), "classes from", filename)
				}
				watcher.Add(filename) // text editors rename, so we have to rewatch
			case err := <-watcher.Errors:
				fmt.Println("watch:", err)
			}
		}
	}()
	return watcher.Add(filename)
}

func main() {
	fmt.Print(`memjit Copyright (C) 2024-2026   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

`)

	// init random generator for compilation unit ids
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute shell command (repeatable)")

	flag.StringVar(&basepath, "data", "data", "Data folder for settings.json")

	var watched arrayFlags
	flag.Var(&watched, "watch", "Class hierarchy file to reload on change (repeatable)")

	profile := ""
	flag.StringVar(&profile, "profile", "", "Write a CPU profile to this file")

	batch := false
	flag.BoolVar(&batch, "batch", false, "Exit after executing the -c commands instead of starting the shell")

	flag.Parse()
	hierarchies := flag.Args()

	// settings initialization
	if err := settings.Load(basepath); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	if err := settings.InitSettings(basepath); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	registry = classpath.NewRegistry(classpath.Config{
		Itable:    settings.ItableConfig(),
		Workers:   settings.Settings.LinkWorkers,
		CacheSize: settings.Settings.ResolveCache,
	})

	// load class hierarchies from command line
	for _, file := range append(hierarchies, watched...) {
		fmt.Println("Loading " + file + " ...")
		if _, err := registry.LoadFile(file); err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
	}
	for _, file := range watched {
		if err := watch(file); err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
	}
	sh := shell.New(registry, os.Stdout)
	for _, command := range commands {
		fmt.Println("Executing " + command + " ...")
		if err := sh.Exec(command); err != nil {
			fmt.Println("error:", err)
		}
	}

	// install exit handler
	cancelChan := make(chan os.Signal, 1)
	signal.Notify(cancelChan, syscall.SIGTERM, syscall.SIGINT)
	go (func() {
		<-cancelChan
		exitroutine()
		os.Exit(1)
	})()

	// init profiling
	if profile != "" {
		f, err := os.Create(profile)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if !batch {
		fmt.Print(`

    Type help to show help

`)
		// REPL shell
		shell.Repl(registry, os.Stdout)
	}

	// normal shutdown
	exitroutine()
}

func exitroutine() {
	fmt.Println("Exit procedure...")
	if err := settings.Save(basepath); err != nil {
		fmt.Println("error saving settings:", err)
	}
	trace.SetTrace(false, "", false)
	fmt.Println("Exit procedure finished")
}
