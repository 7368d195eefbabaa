// Copyright 2025 Gaceta Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package semindex

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/gacetalabs/gaceta/core"
)

// Snapshot layout: the vector file carries the dimension followed by a flat
// run of count*dim raw float32 values; the metadata file carries slot-keyed
// entries. The two files are written together after every mutation.

func marshalVectors(dim int, vectors [][]float32) []byte {
	size := varint.Int.Size(dim) + varint.Int.Size(len(vectors))
	for _, vec := range vectors {
		for _, f := range vec {
			size += raw.Float32.Size(f)
		}
	}

	bs := make([]byte, size)
	n := varint.Int.Marshal(dim, bs)
	n += varint.Int.Marshal(len(vectors), bs[n:])
	for _, vec := range vectors {
		for _, f := range vec {
			n += raw.Float32.Marshal(f, bs[n:])
		}
	}
	return bs
}

func unmarshalVectors(bs []byte) (dim int, vectors [][]float32, err error) {
	dim, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	count, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if dim <= 0 || count < 0 {
		return 0, nil, fmt.Errorf("%w: dim=%d count=%d", ErrCorruptSnapshot, dim, count)
	}

	vectors = make([][]float32, count)
	for i := range vectors {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j], n1, err = raw.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return 0, nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
			}
		}
		vectors[i] = vec
	}
	return dim, vectors, nil
}

func marshalMetadata(entries map[int]*Metadata) []byte {
	size := varint.Int.Size(len(entries))
	for slot, meta := range entries {
		size += varint.Int.Size(slot) + metadataSize(meta)
	}

	bs := make([]byte, size)
	n := varint.Int.Marshal(len(entries), bs)
	for slot, meta := range entries {
		n += varint.Int.Marshal(slot, bs[n:])
		n += marshalMetadataEntry(meta, bs[n:])
	}
	return bs
}

func unmarshalMetadata(bs []byte) (map[int]*Metadata, error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count=%d", ErrCorruptSnapshot, count)
	}

	entries := make(map[int]*Metadata, count)
	for i := 0; i < count; i++ {
		slot, n1, err := varint.Int.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
		}
		meta, n1, err := unmarshalMetadataEntry(bs[n:])
		n += n1
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
		}
		entries[slot] = meta
	}
	return entries, nil
}

func marshalMetadataEntry(meta *Metadata, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(meta.ArticleID), bs)
	n += ord.String.Marshal(meta.Title, bs[n:])
	n += ord.String.Marshal(meta.URL, bs[n:])
	n += ord.String.Marshal(meta.Source, bs[n:])
	n += ord.String.Marshal(meta.PublishedAt, bs[n:])
	n += ord.String.Marshal(meta.Snippet, bs[n:])
	return n
}

func unmarshalMetadataEntry(bs []byte) (meta *Metadata, n int, err error) {
	meta = &Metadata{}
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	meta.ArticleID = core.ID(id)

	var n1 int
	for _, field := range []*string{
		&meta.Title, &meta.URL, &meta.Source, &meta.PublishedAt, &meta.Snippet,
	} {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return meta, n, nil
}

func metadataSize(meta *Metadata) int {
	return varint.Uint64.Size(uint64(meta.ArticleID)) +
		ord.String.Size(meta.Title) +
		ord.String.Size(meta.URL) +
		ord.String.Size(meta.Source) +
		ord.String.Size(meta.PublishedAt) +
		ord.String.Size(meta.Snippet)
}
