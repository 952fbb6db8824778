package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// addOutlineSeeds adds every outline under testdata plus a minimal one.
func addOutlineSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err == nil {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".toml" {
				return nil
			}
			// #nosec G304 -- path comes from repository testdata walk
			src, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			f.Add(clampSeed(src))
			return nil
		})
	}
	f.Add([]byte{})
	f.Add([]byte("[[decl]]\nkind = \"class\"\nstart = 0\nend = 10\nsuppress = [\"cast\"]\n"))
}

// addCodecSeeds adds byte sequences that hit each decoder branch.
func addCodecSeeds(f *testing.F) {
	for _, seed := range [][]byte{
		{},
		[]byte("plain ascii"),
		{0xc0, 0x80},             // NUL
		{0x00},                   // bare NUL
		{0xc1, 0x81},             // over-long 2-byte
		{0xe0, 0x80, 0x81},       // over-long 3-byte
		{0xed, 0xa0, 0x80},       // lone high surrogate
		{0xe2, 0x82},             // truncated
		{0xf0, 0x9f, 0x98, 0x80}, // 4-byte UTF-8, not modified UTF-8
		{0x80},                   // stray continuation
	} {
		f.Add(seed)
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
