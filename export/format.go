// Package export turns a decoded chunk into its output artifacts.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lollipopkit/distil/binchunk"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatCBOR    Format = "cbor"
	FormatSQLite  Format = "sqlite"
	FormatListing Format = "listing"
)

var formats = []Format{FormatJSON, FormatCBOR, FormatSQLite, FormatListing}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want json, cbor, sqlite or listing)", s)
}

// Ext is the file extension written for f.
func (f Format) Ext() string {
	switch f {
	case FormatCBOR:
		return ".cbor"
	case FormatSQLite:
		return ".db"
	case FormatListing:
		return ".txt"
	}
	return ".json"
}

type Options struct {
	Format Format
	Pretty bool
}

// Encode renders res in a byte-oriented format. SQLite is file based and
// goes through WriteFile instead.
func Encode(res *binchunk.Result, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON, "":
		return JSON(res, opts.Pretty)
	case FormatCBOR:
		return CBOR(res)
	case FormatListing:
		var buf bytes.Buffer
		if err := Listing(&buf, res); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("format %s cannot be encoded to bytes", opts.Format)
}

// WriteFile writes res to path in the requested format, replacing any
// existing file.
func WriteFile(ctx context.Context, path string, res *binchunk.Result, opts Options) error {
	if opts.Format == FormatSQLite {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return SQLite(ctx, path, res)
	}

	data, err := Encode(res, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
