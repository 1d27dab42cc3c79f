package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amanjaiswal-07/youtube-backend/logger"
)

// Spooler saves multipart files to a local temp directory so they can be
// handed to an AssetHost by path.
type Spooler struct {
	dir      string
	maxBytes int64
}

func NewSpooler(dir string, maxMB int64) *Spooler {
	return &Spooler{dir: dir, maxBytes: maxMB << 20}
}

// SpooledFile is a saved upload. Remove must be called once the file has
// been handed off, whether or not the hand-off succeeded.
type SpooledFile struct {
	Path string
	Name string
}

func (f *SpooledFile) Remove() {
	if f == nil {
		return
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.L().WithError(err).WithField("path", f.Path).Warn("failed to remove temp upload")
	}
}

// Spool saves the form file named field. It returns (nil, nil) when the
// field is absent so callers can treat optional files uniformly.
func (s *Spooler) Spool(c *gin.Context, field string) (*SpooledFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, InvalidArgument("could not read %s file", field).Wrap(err)
	}
	if header.Size > s.maxBytes {
		return nil, InvalidArgument("%s file is larger than %d MB", field, s.maxBytes>>20)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	dst := filepath.Join(s.dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(header, dst); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	return &SpooledFile{Path: dst, Name: header.Filename}, nil
}

// Require is Spool for mandatory files.
func (s *Spooler) Require(c *gin.Context, field string) (*SpooledFile, error) {
	f, err := s.Spool(c, field)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, InvalidArgument("%s file is required", field)
	}
	return f, nil
}
