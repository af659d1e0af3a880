package graph

import (
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	pgerrors "pygraph/internal/errors"
)

// Save renders the graph and writes it to path. A ".zst" suffix
// compresses the artifact with zstandard. Write failures propagate;
// there is no retry and a failed run leaves no partial artifact behind
// beyond what the filesystem already committed.
func (g *ImportGraph) Save(path string, format Format) error {
	text, err := g.Render(format)
	if err != nil {
		return err
	}

	data := []byte(text)
	if strings.HasSuffix(path, ".zst") {
		data, err = compress(data)
		if err != nil {
			return pgerrors.New(pgerrors.OutputUnwritable, "compress graph", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return pgerrors.New(pgerrors.OutputUnwritable, "write graph to "+path, err)
	}

	return nil
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = enc.Close() }()

	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}
