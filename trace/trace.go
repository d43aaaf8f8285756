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
package trace

import "io"
import "os"
import "fmt"
import "sync"
import "time"
import "path/filepath"
import "encoding/json"

import "github.com/pkg/errors"
import "github.com/ulikunitz/xz"

// Tracefile writes chrome://tracing events (a JSON array). All methods
// accept a nil receiver and do nothing then, so callers can pass the
// tracefile around without checking whether tracing is on.
type Tracefile struct {
	isFirst bool
	file    io.WriteCloser
	m       sync.Mutex
}

var Default *Tracefile // process wide trace, nil when tracing is off

// SetTrace closes the current default trace and opens a new one if on is set.
func SetTrace(on bool, dir string, compress bool) error {
	if Default != nil {
		Default.Close()
		Default = nil
	}
	if on {
		t, err := Open(dir, compress)
		if err != nil {
			return err
		}
		Default = t
	}
	return nil
}

// xzFile closes the compressor before the underlying file
type xzFile struct {
	*xz.Writer
	f *os.File
}

func (x xzFile) Close() error {
	if err := x.Writer.Close(); err != nil {
		x.f.Close()
		return err
	}
	return x.f.Close()
}

// Open creates trace_<unixtime>.json in dir (with .xz appended when compressed).
func Open(dir string, compress bool) (*Tracefile, error) {
	name := filepath.Join(dir, "trace_"+fmt.Sprint(time.Now().Unix())+".json")
	if compress {
		name += ".xz"
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrap(err, "open trace file")
	}
	if !compress {
		return NewTrace(f), nil
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "start xz stream")
	}
	return NewTrace(xzFile{w, f}), nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	return result
}

func (t *Tracefile) Close() error {
	if t == nil {
		return nil
	}
	t.m.Lock()
	defer t.m.Unlock()
	t.file.Write([]byte("]"))
	return t.file.Close()
}

func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.EventHalf(name, cat, "B", 0, 0)
	defer t.EventHalf(name, cat, "E", 0, 0)
	f()
}

func (t *Tracefile) Event(name string, cat string, typ string) {
	t.EventHalf(name, cat, typ, 0, 0)
}

func (t *Tracefile) EventHalf(name string, cat string, typ string, tid int, pid int) {
	if t == nil {
		return
	}
	ts := time.Since(start).Microseconds()
	t.EventFull(name, cat, typ, ts, tid, pid)
}

/*
*

	@name string function
	@cat string comma separated categories (for filtering)
	@typ B/E for begin/end, X for events
	@ts timestamp in microseconds
	@pid process id
	@tid thread id
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, tid int, pid int) {
	if t == nil {
		return
	}
	t.m.Lock()
	defer t.m.Unlock()
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	ev := struct {
		Name  string `json:"name"`
		Cat   string `json:"cat"`
		Phase string `json:"ph"`
		Ts    int64  `json:"ts"`
		Pid   int    `json:"pid"`
		Tid   int    `json:"tid"`
		Scope string `json:"s"`
	}{name, cat, typ, ts, pid, tid, "g"}
	b, _ := json.Marshal(ev)
	t.file.Write(b)
}

var start time.Time = time.Now()
