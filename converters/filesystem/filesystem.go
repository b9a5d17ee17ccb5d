package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/darianmavgo/json2csv/converters/common"
)

// FilePerm is the permission used for newly created output files.
const FilePerm = 0644

// OpenForOutput opens path for writing.
//
// Without allowOverwrite the file is created with O_EXCL, so an existing path
// fails with FILE_EXISTS and is left untouched; the existence check and the
// creation are one system call. With allowOverwrite an existing file is
// truncated. Any other failure is reported as IO.
func OpenForOutput(path string, allowOverwrite bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if allowOverwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, FilePerm)
	if err != nil {
		if !allowOverwrite && errors.Is(err, fs.ErrExist) {
			return nil, common.NewError(common.FileExists, path, err)
		}
		return nil, common.NewError(common.IO, path, err)
	}
	return f, nil
}

// OutputFilename derives the output file name for inputPath: the directory
// and the last extension are dropped and ext is appended. The result is
// relative, so output lands in the current working directory.
func OutputFilename(inputPath, ext string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
