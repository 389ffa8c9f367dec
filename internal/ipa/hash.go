package ipa

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

const hashBufferSize = 64 << 10

// fileMD5 names extracted icons after the archive they came from.
func fileMD5(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, hashBufferSize)); err != nil {
		return "", errors.Wrap(err, "hash archive")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
