package test

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

// LoadTestFile loads a test file from the testdata directory at the
// root of the repository. depth is the number of directories between
// the calling package and the repository root.
//
// File contents are returned as a buffer with a multipart form and a map
// for the HTTP request headers
func LoadTestFile(t *testing.T, depth int, filePath string) (*bytes.Buffer, map[string]string) {
	elements := []string{}
	for i := 0; i < depth; i++ {
		elements = append(elements, "..")
	}
	elements = append(elements, "testdata", filePath)

	file, err := os.Open(path.Join(elements...))
	if err != nil {
		assert.FailNow(t, err.Error())
	}
	defer file.Close()

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", path.Base(filePath))
	if err != nil {
		assert.FailNow(t, err.Error())
	}

	if _, err := io.Copy(w, file); err != nil {
		assert.FailNow(t, err.Error())
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
