package transfer

import (
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ExportArchive writes the export stream compressed with zstd. The
// JSON is highly repetitive, so this is the format for scheduled
// backups.
func (s *Service) ExportArchive(ctx context.Context, w io.Writer) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := s.Export(ctx, enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ImportArchive imports a zstd-compressed export stream.
func (s *Service) ImportArchive(ctx context.Context, r io.Reader) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()
	return s.Import(ctx, dec)
}
