package classpath

import (
	"strings"
	"testing"

	"github.com/launix-de/memjit/itable"
	"github.com/pkg/errors"
)

const collections = `{"classes": [
	{"name": "ArrayList", "super": "AbstractList", "interfaces": ["RandomAccess"],
	 "methods": [{"name": "size", "type": "()I", "returns": 3}]},
	{"name": "AbstractList", "interfaces": ["List"],
	 "methods": [{"name": "iterator", "type": "()LIterator;", "returns": 77}]},
	{"name": "Iterable", "interface": true,
	 "methods": [{"name": "iterator", "type": "()LIterator;"}]},
	{"name": "Collection", "interface": true, "interfaces": ["Iterable"],
	 "methods": [{"name": "size", "type": "()I"}]},
	{"name": "List", "interface": true, "interfaces": ["Collection"],
	 "methods": [{"name": "get", "type": "(I)LObject;"}]},
	{"name": "RandomAccess", "interface": true}
]}`

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(Config{Workers: 2, CacheSize: 16})
	if _, err := r.LoadHierarchy(strings.NewReader(collections)); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestLoadHierarchy(t *testing.T) {
	r := newTestRegistry(t)
	names := r.Classes()
	if len(names) != 6 {
		t.Fatalf("expected 6 classes, got %v", names)
	}
	al, ok := r.Lookup("ArrayList")
	if !ok {
		t.Fatal("ArrayList missing")
	}
	if al.Super == nil || al.Super.ClassName != "AbstractList" {
		t.Error("superclass declared later was not resolved")
	}
	if m := al.FindMethod("size", "()I"); m == nil || m.Abstract {
		t.Error("concrete method not loaded")
	}
	list, _ := r.Lookup("List")
	if m := list.FindMethod("get", "(I)LObject;"); m == nil || !m.Abstract {
		t.Error("interface methods are abstract")
	}
	if r.MemorySize() == 0 {
		t.Error("memory size not computed")
	}
}

func TestLoadHierarchyUnknownSuper(t *testing.T) {
	r := NewRegistry(Config{})
	_, err := r.LoadHierarchy(strings.NewReader(`{"classes": [{"name": "A", "super": "Nowhere"}]}`))
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("expected class not found, got %v", err)
	}
	if len(r.Classes()) != 0 {
		t.Error("inconsistent file registered classes")
	}
	if _, err := r.LoadHierarchy(strings.NewReader(`{"classes": [`)); err == nil {
		t.Error("broken JSON accepted")
	}
}

func TestLinkOnce(t *testing.T) {
	r := newTestRegistry(t)
	if r.Table("ArrayList") != nil {
		t.Error("table present before linking")
	}
	t1, err := r.Link("ArrayList")
	if err != nil {
		t.Fatal(err)
	}
	t2, _ := r.Link("ArrayList")
	if t1 != t2 || r.Table("ArrayList") != t1 {
		t.Error("second link built a new table")
	}
	if _, err := r.Link("NoSuchClass"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("expected class not found, got %v", err)
	}
}

func TestLinkAll(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.LinkAll(nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range r.Classes() {
		if r.Table(name) == nil {
			t.Errorf("%s not linked", name)
		}
	}
}

func TestLinkAllReportsFailure(t *testing.T) {
	r := newTestRegistry(t)
	r.Register(itable.NewClass("Broken", false, nil, "Missing"))
	err := r.LinkAll(nil)
	if !errors.Is(err, itable.ErrLinkFailure) {
		t.Fatalf("expected link failure, got %v", err)
	}
	if r.Table("Broken") != nil {
		t.Error("failed class got a table")
	}
	if r.Table("ArrayList") == nil {
		t.Error("healthy classes must still link")
	}
}

func TestResolveMethod(t *testing.T) {
	r := newTestRegistry(t)
	m, err := r.ResolveMethod("List", "iterator", "()LIterator;")
	if err != nil {
		t.Fatal(err)
	}
	if m.QualifiedName() != "Iterable.iterator()LIterator;" {
		t.Errorf("resolved to %s", m.QualifiedName())
	}
	again, _ := r.ResolveMethod("List", "iterator", "()LIterator;")
	if again != m {
		t.Error("cached resolution differs")
	}
	if _, err := r.ResolveMethod("List", "missing", "()V"); !errors.Is(err, ErrMethodNotFound) {
		t.Errorf("expected method not found, got %v", err)
	}
}

func TestInvoke(t *testing.T) {
	r := newTestRegistry(t)
	// declared on ArrayList itself
	if v, err := r.Invoke("ArrayList", "List", "size", "()I", nil); err != nil || v != 3 {
		t.Errorf("size: %d %v", v, err)
	}
	// inherited from AbstractList through the superinterface chain
	if v, err := r.Invoke("ArrayList", "Collection", "iterator", "()LIterator;", nil); err != nil || v != 77 {
		t.Errorf("iterator: %d %v", v, err)
	}
	// declared by List, implemented nowhere
	if _, err := r.Invoke("ArrayList", "List", "get", "(I)LObject;", nil); !errors.Is(err, itable.ErrAbstractMethod) {
		t.Errorf("expected abstract method error, got %v", err)
	}
}

func TestReplaceClass(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Link("ArrayList"); err != nil {
		t.Fatal(err)
	}
	old, _ := r.Lookup("ArrayList")
	r.Register(itable.NewClass("ArrayList", false, old.Super))
	if r.Table("ArrayList") != nil {
		t.Error("replacing a class must drop its itable")
	}
	if !r.Remove("ArrayList") || r.Remove("ArrayList") {
		t.Error("remove should succeed exactly once")
	}
}

func TestReloadHierarchy(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.LinkAll(nil); err != nil {
		t.Fatal(err)
	}
	before := len(r.Classes())
	if _, err := r.LoadHierarchy(strings.NewReader(collections)); err != nil {
		t.Fatal(err)
	}
	if after := r.Classes(); len(after) != before {
		t.Fatalf("reload changed the class count from %d to %d: %v", before, len(after), after)
	}
	if r.Table("AbstractList") != nil {
		t.Error("reload must drop the old itables")
	}
	if v, err := r.Invoke("ArrayList", "Collection", "size", "()I", nil); err != nil || v != 3 {
		t.Errorf("size after reload: %d %v", v, err)
	}
	if !r.Remove("ArrayList") {
		t.Fatal("remove after reload failed")
	}
	if _, ok := r.Lookup("ArrayList"); ok {
		t.Error("ArrayList still present after remove")
	}
	if len(r.Classes()) != before-1 {
		t.Errorf("expected %d classes, got %v", before-1, r.Classes())
	}
}

func TestReplaceInterfaceDropsDependentTables(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Link("ArrayList"); err != nil {
		t.Fatal(err)
	}
	_, err := r.LoadHierarchy(strings.NewReader(`{"classes": [
		{"name": "Collection", "interface": true, "interfaces": ["Iterable"],
		 "methods": [{"name": "size", "type": "()I"}]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if r.Table("ArrayList") != nil {
		t.Error("ArrayList kept an itable built against the old Collection")
	}
	callee, err := r.ResolveMethod("Collection", "size", "()I")
	if err != nil {
		t.Fatal(err)
	}
	table, err := r.Link("ArrayList")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, name := range table.Candidates(itable.MethodSlot(callee)) {
		if name == "Collection.size()I" {
			found = true
		}
	}
	if !found {
		t.Errorf("relinked table misses Collection.size: %v", table.Candidates(itable.MethodSlot(callee)))
	}
}

func TestSuperclassCycleRejected(t *testing.T) {
	r := NewRegistry(Config{})
	_, err := r.LoadHierarchy(strings.NewReader(`{"classes": [
		{"name": "I", "interface": true, "methods": [{"name": "m", "type": "()V"}]},
		{"name": "A", "super": "B", "interfaces": ["I"]},
		{"name": "B", "super": "A"}
	]}`))
	if err == nil {
		t.Fatal("superclass cycle accepted")
	}
	if len(r.Classes()) != 0 {
		t.Errorf("cyclic file registered classes: %v", r.Classes())
	}
}
