package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

// languageSeeds cover constructs the testdata tree may not.
var languageSeeds = []string{
	"",
	"x = 1\n\nx\n",
	"f = \\a, b -> a + b\n\nf 1 2\n",
	"when x is\n    A | B -> 1\n    C n if n > 0 -> 2\n    _ -> 3",
	"r = { a: 1, b: \"two\" }\n\nr.a\n",
	"\\{ x, y ? 0 } -> x\n",
	"a = b\nb = a\n\na\n",
	"\"\\u(1F600) \\q\"\n",
	"Foo : [ Bar I64, Baz ]\n\nx : Foo\nx = Baz\n\nx\n",
	"if True then 0x10 else -1.5\n",
	"{ { { } } }",
	"(((",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.roc файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".roc" {
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
