package protocol

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrProtocol marks a malformed message. The connection that produced it
// stays usable; the caller answers with an error response and keeps reading.
var ErrProtocol = errors.New("invalid message")

// Decoder reads newline-delimited JSON messages from a stream. Blank lines
// are skipped. A message that fails to parse yields an error wrapping
// ErrProtocol; transport failures surface as the underlying read error.
type Decoder struct {
	reader *bufio.Reader
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{reader: bufio.NewReader(r)}
}

// Decode reads the next message and unmarshals it into v.
func (d *Decoder) Decode(v any) error {
	for {
		line, err := d.reader.ReadBytes('\n')
		if err != nil {
			// A peer may close right after the last message without a
			// trailing delimiter; still deliver what arrived.
			if !errors.Is(err, io.EOF) || len(trim(line)) == 0 {
				return err
			}
		}
		line = trim(line)
		if len(line) == 0 {
			continue
		}
		if err := json.Unmarshal(line, v); err != nil {
			return fmt.Errorf("%w: %v", ErrProtocol, err)
		}
		return nil
	}
}

// Encoder writes one JSON object per line. encoding/json escapes newlines
// inside string values, so the payload never contains an unescaped
// delimiter.
type Encoder struct {
	writer io.Writer
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

// Encode marshals v and writes it followed by a single newline.
func (e *Encoder) Encode(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	data = append(data, '\n')
	if _, err := e.writer.Write(data); err != nil {
		return err
	}
	return nil
}

func trim(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
