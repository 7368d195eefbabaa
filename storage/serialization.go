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


package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/gacetalabs/gaceta/core"
)

// IDMUS is the MUS serializer for core.ID.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idMUS) Size(id core.ID) int {
	return varint.Uint64.Size(uint64(id))
}

// TimeMUS is the MUS serializer for timestamps. The zero time is encoded
// as a single absent marker byte; all other values carry microsecond
// precision and are restored in UTC.
var TimeMUS = timeMUS{}

type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) int {
	if t.IsZero() {
		return ord.Bool.Marshal(false, bs)
	}
	n := ord.Bool.Marshal(true, bs)
	return n + varint.Int64.Marshal(t.UnixMicro(), bs[n:])
}

func (timeMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return time.Time{}, n, err
	}
	us, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(us).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) int {
	if t.IsZero() {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + varint.Int64.Size(t.UnixMicro())
}

// ArticleMUS is the MUS serializer for core.Article.
var ArticleMUS = articleMUS{}

type articleMUS struct{}

func (articleMUS) Marshal(a core.Article, bs []byte) (n int) {
	n = IDMUS.Marshal(a.Id, bs)
	n += ord.String.Marshal(a.URL, bs[n:])
	n += ord.String.Marshal(a.Title, bs[n:])
	n += ord.String.Marshal(a.Content, bs[n:])
	n += ord.String.Marshal(a.Summary, bs[n:])
	n += ord.String.Marshal(a.OriginalContent, bs[n:])
	n += ord.String.Marshal(a.Tags, bs[n:])
	n += ord.String.Marshal(a.Source, bs[n:])
	n += ord.String.Marshal(string(a.Status), bs[n:])
	n += TimeMUS.Marshal(a.PublishedAt, bs[n:])
	n += TimeMUS.Marshal(a.CreatedAt, bs[n:])
	return n
}

func (articleMUS) Unmarshal(bs []byte) (a core.Article, n int, err error) {
	var n1 int
	a.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	for _, field := range []*string{
		&a.URL, &a.Title, &a.Content, &a.Summary,
		&a.OriginalContent, &a.Tags, &a.Source,
	} {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	var status string
	status, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Status = core.ArticleStatus(status)
	a.PublishedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.CreatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (articleMUS) Size(a core.Article) (size int) {
	size = IDMUS.Size(a.Id)
	size += ord.String.Size(a.URL)
	size += ord.String.Size(a.Title)
	size += ord.String.Size(a.Content)
	size += ord.String.Size(a.Summary)
	size += ord.String.Size(a.OriginalContent)
	size += ord.String.Size(a.Tags)
	size += ord.String.Size(a.Source)
	size += ord.String.Size(string(a.Status))
	size += TimeMUS.Size(a.PublishedAt)
	size += TimeMUS.Size(a.CreatedAt)
	return size
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalArticle serializes an Article to bytes.
func MarshalArticle(article *core.Article) []byte {
	buf := make([]byte, ArticleMUS.Size(*article))
	ArticleMUS.Marshal(*article, buf)
	return buf
}

// UnmarshalArticle deserializes an Article from bytes.
func UnmarshalArticle(data []byte) (*core.Article, error) {
	article, _, err := ArticleMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &article, nil
}
