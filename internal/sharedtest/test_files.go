package sharedtest

import (
	"os"
)

// WithTempFileContaining creates a temporary file with the given contents, calls the function
// with its path, and then removes the file.
func WithTempFileContaining(data []byte, action func(filename string)) {
	f, err := os.CreateTemp("", "test-file-*")
	if err != nil {
		panic(err)
	}
	filename := f.Name()
	_, _ = f.Write(data)
	_ = f.Close()
	defer os.Remove(filename)
	action(filename)
}
