package trace

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

type bufCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

type event struct {
	Name  string `json:"name"`
	Cat   string `json:"cat"`
	Phase string `json:"ph"`
}

func TestTraceWellFormed(t *testing.T) {
	buf := new(bufCloser)
	tf := NewTrace(buf)
	tf.Duration("link", "itable", func() {
		tf.Event("collect", "itable", "X")
	})
	if err := tf.Close(); err != nil {
		t.Fatal(err)
	}
	if !buf.closed {
		t.Error("underlying writer not closed")
	}
	var events []event
	if err := json.Unmarshal(buf.Bytes(), &events); err != nil {
		t.Fatalf("trace is not a JSON array: %v\n%s", err, buf.String())
	}
	want := []event{{"link", "itable", "B"}, {"collect", "itable", "X"}, {"link", "itable", "E"}}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %v, got %v", i, want[i], events[i])
		}
	}
}

func TestNilTracefile(t *testing.T) {
	var tf *Tracefile
	ran := false
	tf.Duration("x", "y", func() { ran = true })
	tf.Event("x", "y", "X")
	if err := tf.Close(); err != nil {
		t.Error(err)
	}
	if !ran {
		t.Error("Duration must still run its body without a tracefile")
	}
}

func TestOpenCompressed(t *testing.T) {
	dir := t.TempDir()
	tf, err := Open(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	tf.Event("start", "test", "X")
	if err := tf.Close(); err != nil {
		t.Fatal(err)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "trace_*.json.xz"))
	if len(files) != 1 {
		t.Fatalf("expected one compressed trace, got %v", files)
	}
	f, err := os.Open(files[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r, err := xz.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	var events []event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Name != "start" {
		t.Errorf("unexpected events %v", events)
	}
}

func TestSetTrace(t *testing.T) {
	dir := t.TempDir()
	if err := SetTrace(true, dir, false); err != nil {
		t.Fatal(err)
	}
	if Default == nil {
		t.Fatal("default trace not opened")
	}
	Default.Event("x", "y", "X")
	if err := SetTrace(false, dir, false); err != nil {
		t.Fatal(err)
	}
	if Default != nil {
		t.Error("default trace still set")
	}
	files, _ := filepath.Glob(filepath.Join(dir, "trace_*.json"))
	if len(files) != 1 {
		t.Fatalf("expected one trace file, got %v", files)
	}
	b, _ := os.ReadFile(files[0])
	var events []event
	if err := json.Unmarshal(b, &events); err != nil {
		t.Errorf("closed trace is not valid JSON: %v", err)
	}
}
