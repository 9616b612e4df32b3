// Package export reads and writes the JSONL interchange format for log
// events, one event per line.
package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/store"
)

// maxLineSize bounds a single JSONL line. An event with full notes and
// tags stays well under this.
const maxLineSize = 1 << 20

// WriteJSONL streams every stored event to w, oldest first.
// Returns the number of events written.
func WriteJSONL(w io.Writer, st *store.Store) (int, error) {
	events, err := st.ListLogs(-1, 0)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	// ListLogs is newest first; the export reads better oldest first.
	written := 0
	for i := len(events) - 1; i >= 0; i-- {
		if err := enc.Encode(&events[i]); err != nil {
			return written, fmt.Errorf("export: encoding %q: %w", events[i].ID, err)
		}
		written++
	}
	return written, bw.Flush()
}

// ImportResult summarizes one import pass.
type ImportResult struct {
	Imported  int
	Skipped   int // ids already present
	Malformed int // undecodable lines
}

// ReadJSONL imports events from r. Lines that fail to decode are counted
// and skipped, never fatal; an id collision with an existing event skips
// the line and keeps the stored event. Storage errors abort.
func ReadJSONL(r io.Reader, st *store.Store) (ImportResult, error) {
	var res ImportResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev model.LogEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			res.Malformed++
			continue
		}
		if ev.ID == "" || ev.Timestamp <= 0 {
			res.Malformed++
			continue
		}

		if err := st.InsertLog(&ev); err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Imported++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("export: reading input: %w", err)
	}
	return res, nil
}
