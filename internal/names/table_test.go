package names

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"lintmap/internal/mutf8"
)

func TestInternIdempotent(t *testing.T) {
	table := NewTable()

	inputs := [][]byte{
		[]byte("hello"),
		mutf8.EncodeString("Привет"),
		{0xC0, 0x80},
		{0xFF, 0xFE}, // Intern does not validate
		{},
	}
	for _, b := range inputs {
		n1 := table.Intern(b)
		n2 := table.Intern(bytes.Clone(b))
		if n1 != n2 {
			t.Errorf("Intern(% X) returned different names: %d != %d", b, n1.Index(), n2.Index())
		}
		if n1.String() != n2.String() {
			t.Errorf("String mismatch: %q != %q", n1.String(), n2.String())
		}
	}

	if a, b := table.InternString("alpha"), table.InternString("beta"); a == b {
		t.Error("different strings must produce different names")
	}
}

func TestInternCopiesInput(t *testing.T) {
	table := NewTable()
	buf := []byte("mutable")
	n := table.Intern(buf)
	buf[0] = 'M'

	if got := n.String(); got != "mutable" {
		t.Errorf("name changed with caller buffer: %q", got)
	}
	if table.Intern([]byte("mutable")) != n {
		t.Error("lookup by original bytes failed")
	}
}

func TestInternStringAndChars(t *testing.T) {
	table := NewTable()
	s := "naïve\x00id"

	byString := table.InternString(s)
	byChars := table.InternChars([]uint16{'n', 'a', 0xEF, 'v', 'e', 0, 'i', 'd'})
	byBytes := table.Intern(mutf8.EncodeString(s))

	if byString != byChars || byString != byBytes {
		t.Fatalf("names differ: %d %d %d", byString.Index(), byChars.Index(), byBytes.Index())
	}
	if byString.String() != s {
		t.Errorf("String() = %q, want %q", byString.String(), s)
	}
}

func TestFromUtf(t *testing.T) {
	table := NewTable()

	n, err := table.FromUtf([]byte{'a', 0xC0, 0x81}, mutf8.Lenient)
	if err != nil {
		t.Fatalf("lenient: %v", err)
	}
	if n.String() != "a\x01" {
		t.Errorf("got %q", n.String())
	}

	before := table.Len()
	_, err = table.FromUtf([]byte{'a', 'b', 0x00}, mutf8.Strict)
	var de *mutf8.DecodeError
	if !errors.As(err, &de) || de.Offset != 2 {
		t.Fatalf("strict error = %v, want offset 2", err)
	}
	if table.Len() != before {
		t.Error("rejected input must not be interned")
	}
}

func TestNameAccessors(t *testing.T) {
	table := NewTable()
	n := table.InternString("java.util.List")

	if n.Utf8Len() != len("java.util.List") {
		t.Errorf("Utf8Len = %d", n.Utf8Len())
	}

	dst := make([]byte, 4+n.Utf8Len())
	if w := n.WriteUtf8(dst, 4); w != n.Utf8Len() {
		t.Errorf("WriteUtf8 wrote %d bytes", w)
	}
	if string(dst[4:]) != "java.util.List" {
		t.Errorf("WriteUtf8 content = %q", dst[4:])
	}

	dot := n.LastIndexByte('.')
	if dot != 9 {
		t.Fatalf("LastIndexByte = %d", dot)
	}
	pkg := n.SubName(0, dot)
	simple := n.SubName(dot+1, n.Utf8Len())
	if pkg != table.InternString("java.util") || simple != table.InternString("List") {
		t.Errorf("SubName split = %q / %q", pkg, simple)
	}
	if !n.HasPrefix(pkg) || pkg.HasPrefix(n) {
		t.Error("HasPrefix mismatch")
	}
	if joined := pkg.Concat(table.Predefined().Dot).Concat(simple); joined != n {
		t.Errorf("Concat = %q", joined)
	}
	if n.LastIndexByte('/') != -1 {
		t.Error("expected -1 for missing byte")
	}
}

func TestPredefined(t *testing.T) {
	table := NewTable()
	p := table.Predefined()

	if !p.Empty.IsEmpty() || p.Empty != table.Intern(nil) {
		t.Error("empty name must have index 0")
	}
	if p.Init.String() != "<init>" || p.Init != table.InternString("<init>") {
		t.Errorf("Init = %q", p.Init)
	}
	if p.JavaLangObject.Table() != table {
		t.Error("predefined name bound to wrong table")
	}
	if int(p.FirstUser()) != table.Len() {
		t.Errorf("FirstUser = %d, table has %d names", p.FirstUser(), table.Len())
	}
	if n := table.InternString("userName"); n.Index() != p.FirstUser() {
		t.Errorf("first user name at %d, want %d", n.Index(), p.FirstUser())
	}
}

func TestLookup(t *testing.T) {
	table := NewTable()
	n := table.InternString("x")

	got, ok := table.Lookup(n.Index())
	if !ok || got != n {
		t.Errorf("Lookup(%d) = %v, %v", n.Index(), got, ok)
	}
	if _, ok := table.Lookup(9999); ok {
		t.Error("Lookup of unknown index must fail")
	}
}

func TestNamesFromDifferentTables(t *testing.T) {
	a, b := NewTable(), NewTable()
	if a.InternString("same") == b.InternString("same") {
		t.Error("names from different tables must not compare equal")
	}
}

func TestDispose(t *testing.T) {
	table := NewTable()
	table.InternString("gone")
	table.Dispose()

	if table.Len() != 0 {
		t.Errorf("Len after Dispose = %d", table.Len())
	}
	if _, ok := table.Lookup(0); ok {
		t.Error("Lookup after Dispose must fail")
	}

	defer func() {
		if recover() == nil {
			t.Error("Intern after Dispose must panic")
		}
	}()
	table.InternString("again")
}

func TestInternConcurrent(t *testing.T) {
	table := NewTable()
	base := table.Len()
	const goroutines = 64
	const count = 500

	results := make([][]Name, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := range goroutines {
		go func() {
			defer wg.Done()
			out := make([]Name, count)
			for i := range count {
				out[i] = table.InternString(fmt.Sprintf("ident_%d", i))
			}
			results[g] = out
		}()
	}
	wg.Wait()

	if got := table.Len(); got != base+count {
		t.Fatalf("Len = %d, want %d", got, base+count)
	}
	for g := 1; g < goroutines; g++ {
		for i := range count {
			if results[g][i] != results[0][i] {
				t.Fatalf("goroutine %d got a different name for ident_%d", g, i)
			}
		}
	}
}

func TestInternConcurrentMixed(t *testing.T) {
	table := NewTable()
	const goroutines = 32

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := range goroutines {
		go func() {
			defer wg.Done()
			for i := range 1000 {
				if g%2 == 0 {
					table.InternString(fmt.Sprintf("s_%d", i%100))
					continue
				}
				if n, ok := table.Lookup(uint32(i % 50)); ok {
					_ = n.String()
				}
			}
		}()
	}
	wg.Wait()

	if got := table.Len(); got > len(NewTable().snapshot())+100 {
		t.Errorf("unexpected Len %d", got)
	}
}
