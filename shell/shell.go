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
package shell

import (
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/launix-de/memjit/classpath"
	"github.com/launix-de/memjit/itable"
	"github.com/launix-de/memjit/settings"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

const newprompt = "\033[32m>\033[0m "
const resultprompt = "\033[31m=\033[0m "

const helpText = `commands:
  load <file>                          load a JSON class hierarchy
  classes                              list loaded classes
  link <class>|all                     build itables
  itable <class>                       show the itable of a class
  slot <name> <desc>                   slot index of a method
  invoke <class> <iface> <name> <desc> [args...]
                                       call an interface method
  settings [key [value]]               show or change settings
  trace on|off                         chrome trace of linking
  help                                 this text
`

// Shell executes diagnostic commands against a class registry.
type Shell struct {
	reg *classpath.Registry
	out io.Writer
}

func New(reg *classpath.Registry, out io.Writer) *Shell {
	return &Shell{reg: reg, out: out}
}

// Exec runs one command line. Panics are turned into errors.
func (s *Shell) Exec(line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		fmt.Fprint(s.out, helpText)
	case "load":
		if len(args) != 1 {
			return errors.New("usage: load <file>")
		}
		names, err := s.reg.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "loaded %d classes\n", len(names))
	case "classes":
		s.classes()
	case "link":
		if len(args) != 1 {
			return errors.New("usage: link <class>|all")
		}
		if args[0] == "all" {
			if err := s.reg.LinkAll(nil); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "linked %d classes\n", len(s.reg.Classes()))
			return nil
		}
		t, err := s.reg.Link(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "linked %s, %d slots used\n", t.Class, t.Used())
	case "itable":
		if len(args) != 1 {
			return errors.New("usage: itable <class>")
		}
		t, err := s.reg.Link(args[0])
		if err != nil {
			return err
		}
		s.itable(t)
	case "slot":
		if len(args) != 2 {
			return errors.New("usage: slot <name> <desc>")
		}
		fmt.Fprintf(s.out, "%s%s -> %d\n", args[0], args[1], itable.SlotIndex(args[0], args[1]))
	case "invoke":
		if len(args) < 4 {
			return errors.New("usage: invoke <class> <iface> <name> <desc> [args...]")
		}
		callArgs := make([]uint64, 0, len(args)-4)
		for _, a := range args[4:] {
			v, err := strconv.ParseUint(a, 0, 64)
			if err != nil {
				return errors.Wrapf(err, "argument %s", a)
			}
			callArgs = append(callArgs, v)
		}
		v, err := s.reg.Invoke(args[0], args[1], args[2], args[3], callArgs)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s%d\n", resultprompt, v)
	case "settings":
		result, err := settings.Change(args...)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, strings.TrimRight(result, "\n"))
		s.reg.SetItableConfig(settings.ItableConfig())
	case "trace":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return errors.New("usage: trace on|off")
		}
		if _, err := settings.Change("Trace", strconv.FormatBool(args[0] == "on")); err != nil {
			return err
		}
		s.reg.SetItableConfig(settings.ItableConfig())
	default:
		return errors.Errorf("unknown command %s, try help", cmd)
	}
	return nil
}

func (s *Shell) classes() {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Class", "Kind", "Super", "Interfaces", "Linked"})
	for _, name := range s.reg.Classes() {
		c, ok := s.reg.Lookup(name)
		if !ok {
			continue // removed meanwhile
		}
		kind := "class"
		if c.Interface {
			kind = "interface"
		}
		super := ""
		if c.Super != nil {
			super = c.Super.ClassName
		}
		linked := "no"
		if s.reg.Table(name) != nil {
			linked = "yes"
		}
		table.Append([]string{name, kind, super, strings.Join(c.InterfaceNames, ","), linked})
	}
	table.Render()
}

func (s *Shell) itable(t *itable.Table) {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Slot", "Target", "Candidates"})
	for i := 0; i < itable.Size; i++ {
		names := t.Candidates(i)
		if len(names) == 0 {
			continue
		}
		kind := "direct"
		if _, ok := t.Slot(i).(*itable.Resolver); ok {
			kind = "resolver"
		}
		table.Append([]string{strconv.Itoa(i), kind, strings.Join(names, ", ")})
	}
	table.Render()
}

// Repl reads commands from the terminal until EOF.
func Repl(reg *classpath.Registry, out io.Writer) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       ".memjit-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	l.CaptureExitSignal()

	s := New(reg, out)
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			panic(err)
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := s.Exec(line); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}
