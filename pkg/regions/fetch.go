package regions

import (
	"bufio"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// readFileOrURL calls forEachLine for every line of a local file or, if
// fileOrURL looks like an HTTP(S) URL, of the downloaded document.
func readFileOrURL(fileOrURL string, forEachLine func(lineNumber int, line string) error) error {
	file := fileOrURL

	if isURL(fileOrURL) {
		tmp, err := downloadURLToTempFile(fileOrURL)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)
		file = tmp
	}

	f, err := os.Open(file)
	if err != nil {
		return errors.Wrapf(err, "failed to open file: %s", fileOrURL)
	}
	defer f.Close()

	return errors.Wrapf(readLines(f, forEachLine), "failed to read %s", fileOrURL)
}

func readLines(r io.Reader, forEachLine func(lineNumber int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var lineNumber int
	for scanner.Scan() {
		lineNumber++
		if err := forEachLine(lineNumber, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "failed to read line %d", lineNumber+1)
	}

	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func downloadURLToTempFile(url string) (filename string, err error) {
	logger().Debug("downloading", zap.String("url", url))

	res, err := http.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "failed to download data from URL: %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return "", errors.Errorf("failed to download data from URL: %s - got status code: %d", url, res.StatusCode)
	}

	f, err := os.CreateTemp(os.TempDir(), "itree-download")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create a temp file to store data in")
	}
	defer f.Close()

	if _, err = io.Copy(f, res.Body); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrapf(err, "failed to read data from HTTP response from URL: %s", url)
	}

	return f.Name(), nil
}

func logger() *zap.Logger {
	return zap.L().Named("regions")
}
