package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CopyFileToDir copies src into dstDir under its own base name, creating dstDir when missing.
// The copy gets the source's permission bits. It returns the destination path.
func CopyFileToDir(src, dstDir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return "", errors.Wrapf(err, "stat %s", src)
	}
	if !fi.Mode().IsRegular() {
		return "", errors.Errorf("%s is not a regular file", src)
	}

	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dstDir)
	}

	dst := filepath.Join(dstDir, filepath.Base(src))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", errors.Wrapf(err, "copying %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrapf(err, "writing %s", dst)
	}

	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return "", errors.Wrapf(err, "chmod %s", dst)
	}

	return dst, nil
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
