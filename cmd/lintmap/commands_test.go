package main

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"lintmap/internal/diag"
	"lintmap/internal/mutf8"
	"lintmap/internal/session"
	"lintmap/internal/source"
)

func TestSplitWords(t *testing.T) {
	got := splitWords([]byte("  foo\tbar\n\xc0\x80baz "))
	var words []string
	var starts []int
	for _, w := range got {
		words = append(words, string(w.Bytes))
		starts = append(starts, w.Start)
	}
	if !slices.Equal(words, []string{"foo", "bar", "\xc0\x80baz"}) {
		t.Errorf("words = %q", words)
	}
	if !slices.Equal(starts, []int{2, 6, 10}) {
		t.Errorf("starts = %v", starts)
	}
}

func TestInternWordsReportsInvalid(t *testing.T) {
	sess := session.New(session.Options{Validation: mutf8.Strict})
	file := sess.Files.AddVirtual("words.txt", []byte("alpha \xe0\x80 alpha beta"))

	var rep recorder
	if n := internWords(sess, file, &rep); n != 3 {
		t.Errorf("interned %d words, want 3", n)
	}
	if len(rep.spans) != 1 || rep.spans[0] != (source.Span{File: file, Start: 6, End: 8}) {
		t.Errorf("reported spans = %v", rep.spans)
	}
	if got := sess.Names.Len() - int(sess.Names.Predefined().FirstUser()); got != 2 {
		t.Errorf("new names = %d, want 2", got)
	}

	var out bytes.Buffer
	listNames(&out, sess.Names, sess.Names.Predefined().FirstUser(), 0)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "alpha  5") || !strings.Contains(lines[1], "beta   4") {
		t.Errorf("listing:\n%s", out.String())
	}
}

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		charset string
		want    string
		wantErr bool
	}{
		{name: "utf-8", data: []byte("héllo"), charset: "utf-8", want: "héllo"},
		{name: "utf-8 bom", data: []byte("\xef\xbb\xbfhi"), charset: "utf-8", want: "hi"},
		{name: "utf-16le", data: []byte{'h', 0, 'i', 0}, charset: "utf-16le", want: "hi"},
		{name: "utf-16be", data: []byte{0, 'h', 0, 'i'}, charset: "UTF-16BE", want: "hi"},
		{name: "utf-16 with bom", data: []byte{0xff, 0xfe, 'h', 0}, charset: "utf-16", want: "h"},
		{name: "unknown", data: []byte("x"), charset: "latin1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toUTF8(tt.data, tt.charset)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("toUTF8 = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("A.java", []byte("class A {\n  int x;\n}\n"))

	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: " 12 ", want: 12},
		{in: "2:3", want: 12},
		{in: "1:1", want: 0},
		{in: "99", wantErr: true},
		{in: "9:1", wantErr: true},
		{in: "x", wantErr: true},
		{in: "1:y", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parsePosition(fs, file, tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("parsePosition(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bin")
	bad := filepath.Join(dir, "bad.bin")
	writeFile(t, good, "ok\xc0\x80")
	writeFile(t, bad, "ab\xc0\x81")
	missing := filepath.Join(dir, "missing.bin")

	fs := source.NewFileSet()
	results, err := validateFiles(context.Background(), fs, []string{good, bad, missing}, mutf8.Strict, 2)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil || results[0].Chars != 3 {
		t.Errorf("good = %+v", results[0])
	}
	if results[1].Err == nil || results[2].Err == nil {
		t.Errorf("bad = %v, missing = %v", results[1].Err, results[2].Err)
	}

	var out bytes.Buffer
	if failed := printValidation(&out, fs, results); failed != 2 {
		t.Errorf("failed = %d, want 2", failed)
	}
	if !strings.Contains(out.String(), "error UTF1001 "+filepath.ToSlash(bad)+":1:3") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestLintCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, configFileName)
	writeFile(t, cfgPath, "[lint]\nxlint = [\"unchecked\"]\n")
	outlinePath := filepath.Join(dir, "A.toml")
	writeFile(t, outlinePath, `
text = "class A {\n  void m() {}\n}\n"

[[decl]]
kind = "class"
name = "A"
start = 0
end = 26

  [[decl.decl]]
  kind = "method"
  name = "m"
  start = 12
  end = 23
  suppress = ["unchecked"]

[[warning]]
category = "unchecked"
at = 14
message = "hidden"

[[warning]]
category = "unchecked"
at = 4
message = "shown"
`)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--color", "off", "--config", cfgPath, "lint", outlinePath, "--at", "2:5,4"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("lint: %v\n%s", err, out.String())
	}
	got := out.String()
	for _, want := range []string{
		"lint map: " + outlinePath,
		"2:5      2:5  Lint[enabled={",
		"suppressed={unchecked}]",
		"warning LNT2030 ",
		"[unchecked] shown",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("suppressed warning was reported:\n%s", got)
	}
}

type recorder struct{ spans []source.Span }

func (r *recorder) Report(_ diag.Code, _ diag.Severity, primary source.Span, _ string, _ []diag.Note) {
	r.spans = append(r.spans, primary)
}
