package payload

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrEmptyInput = errors.New("no payloads in input")
	ErrInvalidHex = errors.New("invalid hex payload")
)

// ParseHex decodes a hex payload. Whitespace, ':' and '-' separators and
// an optional 0x prefix are accepted; the empty string is the empty payload.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', '-':
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidHex, s, err)
	}
	return data, nil
}

// ReadLines reads one hex payload per line. Blank lines and lines
// starting with '#' are skipped.
func ReadLines(r io.Reader) ([][]byte, error) {
	var payloads [][]byte

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		data, err := ParseHex(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		payloads = append(payloads, data)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payloads: %w", err)
	}

	if len(payloads) == 0 {
		return nil, ErrEmptyInput
	}
	return payloads, nil
}

// FromArgs parses each argument as a hex payload.
func FromArgs(args []string) ([][]byte, error) {
	if len(args) == 0 {
		return nil, ErrEmptyInput
	}
	payloads := make([][]byte, 0, len(args))
	for i, arg := range args {
		data, err := ParseHex(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		payloads = append(payloads, data)
	}
	return payloads, nil
}

// Load reads payloads from path. With raw set the whole file is a single
// binary payload, otherwise it holds hex payloads one per line.
func Load(path string, raw bool) ([][]byte, error) {
	if raw {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		return [][]byte{data}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload file: %w", err)
	}
	defer f.Close()

	return ReadLines(f)
}
