package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

var inlineSeeds = []string{
	"",
	"x = 1\n",
	"if a:\n    b\nelse:\n    c\n",
	"def f(*args, **kw) -> int:\n    return len(args)\n",
	"s = r'\\d+' + b\"\\x00\" + '''a\nb'''\n",
	"lambda x: (yield x)\n",
	"a[1:2, ::3] @= b ** -c\n",
	"  x\n",
	"x = (\n",
	"\t\ty\r\n",
	"x = 1 \\\n  + 2\n",
	"# only a comment",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// все *.py из testdata, включая conformance-кейсы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
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
