package nbody

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// SnapshotSink receives the state of a running integration. OnEnd is called
// once after the last snapshot of a successful run.
type SnapshotSink interface {
	OnSnapshot(tDays float64, bodies []Body) error
	OnEnd(finalTDays float64) error
}

// JSONLSnapshotWriter writes one JSON object per snapshot, one per line
type JSONLSnapshotWriter struct {
	bw      *bufio.Writer
	enc     *json.Encoder
	closer  io.Closer
	records int
}

type snapshotRecord struct {
	TimeDays float64 `json:"time_days"`
	Bodies   []Body  `json:"bodies"`
}

// NewJSONLSnapshotWriter buffers snapshots into w. Output reaches w on OnEnd
// or Close.
func NewJSONLSnapshotWriter(w io.Writer) *JSONLSnapshotWriter {
	bw := bufio.NewWriter(w)
	return &JSONLSnapshotWriter{bw: bw, enc: json.NewEncoder(bw)}
}

// CreateJSONLSnapshotFile creates path and returns a writer that owns it.
// Close must be called to release the file.
func CreateJSONLSnapshotFile(path string) (*JSONLSnapshotWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := NewJSONLSnapshotWriter(f)
	w.closer = f
	return w, nil
}

func (w *JSONLSnapshotWriter) OnSnapshot(tDays float64, bodies []Body) error {
	if err := w.enc.Encode(snapshotRecord{TimeDays: tDays, Bodies: bodies}); err != nil {
		return fmt.Errorf("snapshot %d: %w", w.records, err)
	}
	w.records++
	return nil
}

func (w *JSONLSnapshotWriter) OnEnd(float64) error { return w.bw.Flush() }

// Records returns the number of snapshots encoded so far
func (w *JSONLSnapshotWriter) Records() int { return w.records }

// Close flushes pending snapshots and closes the underlying file, if any.
// Both errors are reported.
func (w *JSONLSnapshotWriter) Close() error {
	err := w.bw.Flush()
	if w.closer != nil {
		err = errors.Join(err, w.closer.Close())
		w.closer = nil
	}
	return err
}
