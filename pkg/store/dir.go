package store

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"pixelfrag/pkg/convert"
)

// NewDir returns a sink writing into dir, creating it when missing.
func NewDir(dir string, logger *zap.Logger) (*Dir, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, dir); err != nil {
		return nil, err
	} else if !exists {
		if err2 := fs.MkdirAll(dir, 0755); err2 != nil {
			return nil, fmt.Errorf("create output dir failed: %w", err2)
		}
	}
	return NewDirFs(afero.NewBasePathFs(fs, dir), logger), nil
}

func NewDirFs(fs afero.Fs, logger *zap.Logger) *Dir {
	return &Dir{fs: fs, logger: logger}
}

// Dir writes both artifacts of a conversion as files. They are staged
// under temporary names first so a failed write never clobbers the files of
// an earlier conversion.
type Dir struct {
	fs     afero.Fs
	logger *zap.Logger
}

func (d *Dir) tmpname(name, ext string) string {
	return fmt.Sprintf(".%s.%s.%s", name, xid.New().String(), ext)
}

// Publish stages both artifacts, moves any files of an earlier conversion
// aside and then renames the staged files into place, shader first. Any
// failure restores the earlier files.
func (d *Dir) Publish(_ context.Context, r *convert.Result) error {
	arts := r.Artifacts()
	staged := make([]string, 0, len(arts))
	backups := make(map[string]string, len(arts))
	var placed []string

	rollback := func() {
		for _, name := range placed {
			_ = d.fs.Remove(name)
		}
		for name, bak := range backups {
			if err := d.fs.Rename(bak, name); err != nil {
				d.logger.With(zap.String("file", name), zap.String("backup", bak), zap.Error(err)).Error("restore failed")
			}
		}
		for _, tmp := range staged {
			_ = d.fs.Remove(tmp)
		}
	}

	for _, a := range arts {
		tmp := d.tmpname(a.Name, "tmp")
		if err := afero.WriteFile(d.fs, tmp, a.Data, 0644); err != nil {
			rollback()
			return fmt.Errorf("write %s failed: %w", a.Name, err)
		}
		staged = append(staged, tmp)
	}

	for _, a := range arts {
		exists, err := afero.Exists(d.fs, a.Name)
		if err != nil {
			rollback()
			return fmt.Errorf("stat %s failed: %w", a.Name, err)
		}
		if !exists {
			continue
		}

		bak := d.tmpname(a.Name, "bak")
		if err := d.fs.Rename(a.Name, bak); err != nil {
			rollback()
			return fmt.Errorf("backup %s failed: %w", a.Name, err)
		}
		backups[a.Name] = bak
	}

	// shader first, then preview
	for i, a := range arts {
		if err := d.fs.Rename(staged[i], a.Name); err != nil {
			rollback()
			return fmt.Errorf("rename %s failed: %w", a.Name, err)
		}
		placed = append(placed, a.Name)
		d.logger.With(zap.String("file", a.Name), zap.Int("bytes", len(a.Data))).Debug("written")
	}

	for _, bak := range backups {
		_ = d.fs.Remove(bak)
	}

	return nil
}

// Open returns the content of a file previously written by Publish.
func (d *Dir) Open(name string) ([]byte, error) {
	return afero.ReadFile(d.fs, name)
}
