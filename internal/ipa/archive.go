package ipa

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	infoPlistPattern = "Payload/*.app/Info.plist"

	// Upper bound for the initial read buffer of one entry.
	maxEntryPrealloc = 64 << 20
)

// Archive is an opened .ipa file.
type Archive struct {
	Path string
	Name string
	Size int64

	file *os.File
	zr   *zip.Reader
}

func OpenArchive(p string) (*Archive, error) {
	file, err := os.Open(p)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.WithStack(err)
	}
	zr, err := zip.NewReader(file, stat.Size())
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(ErrInvalidIPA, "%s: %v", filepath.Base(p), err)
	}
	return &Archive{
		Path: p,
		Name: filepath.Base(p),
		Size: stat.Size(),
		file: file,
		zr:   zr,
	}, nil
}

func (a *Archive) Close() error {
	return a.file.Close()
}

func (a *Archive) Files() []*zip.File {
	return a.zr.File
}

// InfoPlist returns the Info.plist of the top-level application bundle.
func (a *Archive) InfoPlist() (*zip.File, error) {
	for _, f := range a.zr.File {
		if ok, _ := path.Match(infoPlistPattern, f.Name); ok {
			return f, nil
		}
	}
	return nil, errors.WithStack(ErrInfoPlistNotFound)
}

func (a *Archive) ReadFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", f.Name)
	}
	defer rc.Close()

	buf := bytes.NewBuffer(make([]byte, 0, int(min(f.UncompressedSize64, maxEntryPrealloc))))
	if _, err := io.Copy(buf, rc); err != nil {
		return nil, errors.Wrapf(err, "read %s", f.Name)
	}
	return buf.Bytes(), nil
}
