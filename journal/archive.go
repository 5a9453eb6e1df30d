package journal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// Export writes the full log to w as xz-compressed JSON. The payload is the
// same array shape the store holds, so an archive restored on another
// machine is indistinguishable from the original.
func (l *Log) Export(w io.Writer) error {
	zw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("archive: open writer: %w", err)
	}

	if err := json.NewEncoder(zw).Encode(l.All()); err != nil {
		return fmt.Errorf("archive: encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: close: %w", err)
	}
	return nil
}

// Import reads an Export archive from r and replaces the stored log with
// its contents.
func (l *Log) Import(r io.Reader) error {
	zr, err := xz.NewReader(r)
	if err != nil {
		return fmt.Errorf("archive: open reader: %w", err)
	}

	var recs []TradeRecord
	if err := json.NewDecoder(zr).Decode(&recs); err != nil {
		return fmt.Errorf("archive: decode: %w", err)
	}

	l.Replace(recs)
	return nil
}
