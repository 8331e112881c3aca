// Package export renders a mind map to PNG, JPEG or a single-page PDF.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"neonmap/internal/config"
	"neonmap/internal/graph"
)

var ErrBusy = errors.New("an export is already running")

// Filename names an artifact after the moment it was produced.
func Filename(f Format, t time.Time) string {
	return fmt.Sprintf("mindmap-%d.%s", t.UnixMilli(), f.Ext())
}

// Exporter writes export artifacts. Only one export runs at a time; a
// request made while one is in flight fails with ErrBusy.
type Exporter struct {
	cfg  config.ExportConfig
	log  *zap.Logger
	now  func() time.Time
	busy atomic.Bool
}

func NewExporter(cfg config.ExportConfig, log *zap.Logger) *Exporter {
	return &Exporter{cfg: cfg, log: log, now: time.Now}
}

// Busy reports whether an export is in flight.
func (x *Exporter) Busy() bool {
	return x.busy.Load()
}

func (x *Exporter) options(selected graph.IDSet) RenderOptions {
	return RenderOptions{
		PixelRatio: x.cfg.PixelRatio,
		Background: x.cfg.Background,
		Selected:   selected,
	}
}

// Render encodes m in format f to w.
func (x *Exporter) Render(w io.Writer, m *graph.Map, f Format, selected graph.IDSet) error {
	img, err := Rasterize(m, x.options(selected))
	if err != nil {
		return err
	}
	return Encode(w, img, f, x.cfg.JPEGQuality)
}

// Export renders m into a new file in the export directory and returns its
// path. m must not be mutated while the export runs; pass a snapshot.
func (x *Exporter) Export(ctx context.Context, m *graph.Map, f Format, selected graph.IDSet) (string, error) {
	if !x.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer x.busy.Store(false)

	start := x.now()
	path, err := x.export(ctx, m, f, selected, start)
	if err != nil {
		x.log.Error("export failed", zap.String("format", string(f)), zap.Error(err))
		return "", err
	}
	x.log.Info("export written",
		zap.String("format", string(f)),
		zap.String("path", path),
		zap.Duration("took", x.now().Sub(start)))
	return path, nil
}

func (x *Exporter) export(ctx context.Context, m *graph.Map, f Format, selected graph.IDSet, at time.Time) (string, error) {
	img, err := Rasterize(m, x.options(selected))
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := x.cfg.ExportPath(Filename(f, at))
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mindmap-*")
	if err != nil {
		return "", errors.Wrap(err, "create export file")
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, img, f, x.cfg.JPEGQuality); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", errors.Wrap(err, "chmod export file")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "close export file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrap(err, "move export file")
	}
	return path, nil
}
