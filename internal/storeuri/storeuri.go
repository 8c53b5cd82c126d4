// Package storeuri turns dictionary locations given on command lines and
// in environment variables into stores.
package storeuri

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/cours-de-latin/wordnet/store"
	"github.com/cours-de-latin/wordnet/store/minio"
	"github.com/cours-de-latin/wordnet/store/s3"
)

// Open resolves a location:
//
//	/path/to/dict, dir:///path, file:///path   local directory
//	mem://                                    empty in-memory store
//	s3://bucket/prefix                        S3, default AWS credential chain
//	minio://host:port/bucket/prefix           MinIO, MINIO_ACCESS_KEY and MINIO_SECRET_KEY
//
// Any location may carry ?compression=zstd or ?compression=lz4. MinIO
// locations accept ?secure=true.
func Open(ctx context.Context, location string) (store.Store, error) {
	if !strings.Contains(location, "://") {
		return store.NewLocal(location), nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", location, err)
	}

	var st store.Store
	switch u.Scheme {
	case "dir", "file":
		st = store.NewLocal(u.Host + u.Path)
	case "mem":
		st = store.NewMemory()
	case "s3":
		st, err = s3.NewFromEnv(ctx, u.Host, u.Path)
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		secure, _ := strconv.ParseBool(u.Query().Get("secure"))
		st, err = minio.Dial(u.Host, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"),
			secure, bucket, prefix)
	default:
		return nil, fmt.Errorf("unsupported dictionary location scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	if c := u.Query().Get("compression"); c != "" {
		return store.NewCompressed(st, store.Codec(c))
	}
	return st, nil
}
