// Package auditlog exports the registry's notice log to line-oriented
// formats (JSONL and CSV) and reads them back. The exports are meant
// for external audit tooling; re-importing a JSONL log yields notices
// suitable for snapshot replay or commitment checking.
package auditlog

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/holiman/uint256"

	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

// WriteJSONL writes one JSON object per notice, in order.
func WriteJSONL(w io.Writer, notices []registry.Notice) error {
	enc := json.NewEncoder(w)
	for _, n := range notices {
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("seq %d: %w", n.Seq, err)
		}
	}
	return nil
}

// ReadJSONL parses a JSONL export. Empty lines are skipped.
func ReadJSONL(r io.Reader) ([]registry.Notice, error) {
	var out []registry.Notice
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var n registry.Notice
		if err := json.Unmarshal(line, &n); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}
		out = append(out, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	return out, nil
}

var csvHeader = []string{
	"seq", "kind", "from", "to", "token_id",
	"owner", "spender", "operator", "approved", "uri", "paused", "time",
}

// WriteCSV writes the notices as CSV with a header row. Token ids are
// rendered in decimal.
func WriteCSV(w io.Writer, notices []registry.Notice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	for _, n := range notices {
		tokenID := ""
		if n.TokenID != nil {
			tokenID = n.TokenID.Dec()
		}
		record := []string{
			strconv.FormatUint(n.Seq, 10),
			string(n.Kind),
			string(n.From),
			string(n.To),
			tokenID,
			string(n.Owner),
			string(n.Spender),
			string(n.Operator),
			strconv.FormatBool(n.Approved),
			n.URI,
			strconv.FormatBool(n.Paused),
			n.Time.UTC().Format(time.RFC3339Nano),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("seq %d: %w", n.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a CSV export produced by WriteCSV.
func ReadCSV(r io.Reader) ([]registry.Notice, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("header: expected column %q, got %q", col, header[i])
		}
	}

	var out []registry.Notice
	for lineNum := 2; ; lineNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		n := registry.Notice{
			Kind:     registry.NoticeKind(record[1]),
			From:     registry.Address(record[2]),
			To:       registry.Address(record[3]),
			Owner:    registry.Address(record[5]),
			Spender:  registry.Address(record[6]),
			Operator: registry.Address(record[7]),
			URI:      record[9],
		}
		n.Seq, err = strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad seq %q: %w", lineNum, record[0], err)
		}
		if record[4] != "" {
			n.TokenID, err = uint256.FromDecimal(record[4])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad token id %q: %w", lineNum, record[4], err)
			}
		}
		n.Approved, err = strconv.ParseBool(record[8])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad approved %q: %w", lineNum, record[8], err)
		}
		n.Paused, err = strconv.ParseBool(record[10])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad paused %q: %w", lineNum, record[10], err)
		}
		n.Time, err = time.Parse(time.RFC3339Nano, record[11])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad time %q: %w", lineNum, record[11], err)
		}
		out = append(out, n)
	}
	return out, nil
}
