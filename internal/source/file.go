package source

import (
	"context"
	"io"
	"os"
)

// FileSource reads the dataset from a local CSV file.
type FileSource struct {
	Path string
}

// Open opens the file. A missing file is returned as *core.FetchError
// by the loader, like any other unreachable source.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.Path)
}

func (s *FileSource) String() string {
	return s.Path
}
