package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names a compression format.
type Codec string

const (
	Zstd Codec = "zstd"
	LZ4  Codec = "lz4"
)

// Ext returns the file name suffix of the codec.
func (c Codec) Ext() string {
	switch c {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	}
	return ""
}

// Compressed stores every file of an inner Store compressed with codec.
// File names gain the codec's suffix.
type Compressed struct {
	inner Store
	codec Codec
	enc   *zstd.Encoder
}

// NewCompressed wraps inner.
func NewCompressed(inner Store, codec Codec) (*Compressed, error) {
	c := &Compressed{inner: inner, codec: codec}
	switch codec {
	case Zstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, err
		}
		c.enc = enc
	case LZ4:
	default:
		return nil, fmt.Errorf("store: unknown codec %q", codec)
	}
	return c, nil
}

func (c *Compressed) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := c.inner.Open(ctx, name+c.codec.Ext())
	if err != nil {
		return nil, err
	}
	switch c.codec {
	case Zstd:
		dec, err := zstd.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &zstdReadCloser{Decoder: dec, src: rc}, nil
	default:
		return &readCloser{Reader: lz4.NewReader(rc), src: rc}, nil
	}
}

func (c *Compressed) Put(ctx context.Context, name string, data []byte) error {
	var out []byte
	switch c.codec {
	case Zstd:
		// EncodeAll is safe for concurrent use
		out = c.enc.EncodeAll(data, make([]byte, 0, len(data)/3))
	default:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		out = buf.Bytes()
	}
	return c.inner.Put(ctx, name+c.codec.Ext(), out)
}

func (c *Compressed) List(ctx context.Context) ([]string, error) {
	names, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	ext := c.codec.Ext()
	out := names[:0]
	for _, n := range names {
		if strings.HasSuffix(n, ext) {
			out = append(out, strings.TrimSuffix(n, ext))
		}
	}
	return out, nil
}

type zstdReadCloser struct {
	*zstd.Decoder
	src io.Closer
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.src.Close()
}

type readCloser struct {
	io.Reader
	src io.Closer
}

func (r *readCloser) Close() error { return r.src.Close() }
