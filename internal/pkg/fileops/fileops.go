package fileops

import (
	"io"
	"os"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/bufpool"

	"go.uber.org/zap"
)

func CopyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(source)

	dest, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.ModePerm)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			zap.L().Error("failed to close file",
				zap.String("file", f.Name()),
				zap.Error(err),
			)
		}
	}(dest)

	buf := bufpool.GetChunk()
	defer bufpool.PutChunk(buf)
	_, err = io.CopyBuffer(dest, source, *buf)
	return err
}

// Finalize moves a finished partial file onto its final name. Rename is
// atomic on the same filesystem; the copy fallback covers everything else.
func Finalize(part, dst string) error {
	if err := os.Rename(part, dst); err == nil {
		return nil
	}
	if err := CopyFile(part, dst); err != nil {
		return err
	}
	return os.Remove(part)
}

func RemoveIfExists(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("failed to remove file",
			zap.String("file", path),
			zap.Error(err),
		)
	}
}
