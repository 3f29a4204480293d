package image

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"diary-service/internal/shared/httpx"
)

// MaxBytes is the upload size ceiling.
const MaxBytes = 5 << 20

// Extensions double as the content-type allow-list.
var extByType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Kind int

const (
	KindNone Kind = iota
	KindStaged
	KindExisting
)

// Attachment is the tagged image state carried through create/update flows:
// no image at all, a freshly staged upload, or a reference to an object
// already in storage. Exactly one variant's fields are populated.
type Attachment struct {
	Kind        Kind
	Data        []byte // staged
	ContentType string // staged
	Key         string // existing
}

func None() Attachment { return Attachment{Kind: KindNone} }

func Existing(key string) Attachment {
	return Attachment{Kind: KindExisting, Key: key}
}

// Stage validates an incoming file before anything touches the network:
// size ceiling first, then the content type sniffed from the bytes
// themselves (the client-declared type is not trusted).
func Stage(r io.Reader) (Attachment, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return Attachment{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxBytes {
		return Attachment{}, fmt.Errorf("%w: image exceeds %d bytes", httpx.ErrValidation, MaxBytes)
	}
	ct := http.DetectContentType(data)
	if _, ok := extByType[ct]; !ok {
		return Attachment{}, fmt.Errorf("%w: image type %s not allowed", httpx.ErrValidation, ct)
	}
	return Attachment{Kind: KindStaged, Data: data, ContentType: ct}, nil
}

func (a Attachment) Ext() string { return extByType[a.ContentType] }

// NewKey builds the storage key for a staged attachment. Owner prefix plus
// millisecond timestamp keeps keys collision-free in practice.
func NewKey(ownerID, ext string) string {
	return fmt.Sprintf("%s/%d.%s", ownerID, time.Now().UnixMilli(), ext)
}
