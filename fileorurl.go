package dgex

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// OpenFileOrURL reads the full contents of a local file or an http(s) URL.
// Inputs whose names end in .gz are decompressed transparently. There is no
// retry: a failed fetch aborts the caller's run.
func OpenFileOrURL(input string) ([]byte, error) {
	var f io.ReadCloser

	if strings.HasPrefix(input, "http") {
		resp, err := http.Get(input)
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, pfx.Err(fmt.Errorf("fetching %s: status %s", input, resp.Status))
		}

		f = resp.Body
	} else {
		file, err := os.Open(ExpandHome(input))
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer file.Close()

		f = file
	}

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if strings.HasSuffix(strings.ToLower(input), ".gz") {
		gz, err := gzip.NewReader(bytes.NewReader(fileBytes))
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer gz.Close()

		fileBytes, err = io.ReadAll(gz)
		if err != nil {
			return nil, pfx.Err(err)
		}
	}

	return fileBytes, nil
}
