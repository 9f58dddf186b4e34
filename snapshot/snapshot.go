// Package snapshot encodes the finalized distances of a search into a
// compact binary form.
//
// Format (little endian):
//
//	[Magic "PWSA"][Version uint8][Compression uint8][VertexCount uint32][Block][CRC32C uint32]
//
// The checksum covers every byte before it. The block (see compressBlock)
// holds the body:
//
//	[BitmapLen uvarint][Roaring bitmap of reached vertices][Distance uvarint...]
//
// with one distance per reached vertex in ascending vertex order. Unreached
// vertices decode as -1.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/pwsa/internal/conv"
	"github.com/hupe1980/pwsa/internal/hash"
)

const (
	magic      = "PWSA"
	version    = 1
	headerSize = len(magic) + 1 + 1 + 4
	crcSize    = 4
)

var (
	// ErrCorrupt is returned when a snapshot cannot be decoded.
	ErrCorrupt = errors.New("snapshot: corrupt data")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrTooManyVertices is returned when a distance slice does not fit the
	// vertex count field.
	ErrTooManyVertices = errors.New("snapshot: too many vertices")
)

// Encode serializes dist. Negative entries mark unreached vertices.
func Encode(dist []int64, c Compression) ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("snapshot: unknown %s", c)
	}
	n, err := conv.IntToUint32(len(dist))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooManyVertices, err)
	}

	reached := roaring.New()
	for v, d := range dist {
		if d >= 0 {
			reached.Add(uint32(v))
		}
	}
	reached.RunOptimize()

	var bm bytes.Buffer
	if _, err := reached.WriteTo(&bm); err != nil {
		return nil, fmt.Errorf("snapshot: write bitmap: %w", err)
	}

	body := make([]byte, 0, binary.MaxVarintLen64+bm.Len()+int(reached.GetCardinality())*2)
	body = binary.AppendUvarint(body, uint64(bm.Len()))
	body = append(body, bm.Bytes()...)
	it := reached.Iterator()
	for it.HasNext() {
		body = binary.AppendUvarint(body, uint64(dist[it.Next()]))
	}

	block, err := compressBlock(body, c)
	if err != nil {
		return nil, fmt.Errorf("snapshot: compress %s: %w", c, err)
	}

	out := make([]byte, headerSize, headerSize+len(block)+crcSize)
	copy(out, magic)
	out[4] = version
	out[5] = byte(c)
	binary.LittleEndian.PutUint32(out[6:], n)
	out = append(out, block...)
	return binary.LittleEndian.AppendUint32(out, hash.CRC32C(out)), nil
}

// Decode parses a snapshot produced by Encode.
func Decode(data []byte) ([]int64, error) {
	if len(data) < headerSize+crcSize || string(data[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}
	payload := data[:len(data)-crcSize]
	if want := binary.LittleEndian.Uint32(data[len(payload):]); hash.CRC32C(payload) != want {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	c := Compression(data[5])
	if !c.valid() {
		return nil, fmt.Errorf("%w: unknown %s", ErrCorrupt, c)
	}
	n := binary.LittleEndian.Uint32(data[6:])

	body, used, err := decompressBlock(payload[headerSize:], c, maxBodySize(n))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if headerSize+used != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(payload)-headerSize-used)
	}

	bmLen, k := binary.Uvarint(body)
	if k <= 0 {
		return nil, fmt.Errorf("%w: bitmap length", ErrCorrupt)
	}
	body = body[k:]
	if l, err := conv.Uint64ToInt(bmLen); err != nil || l > len(body) {
		return nil, fmt.Errorf("%w: bitmap length %d", ErrCorrupt, bmLen)
	}

	reached := roaring.New()
	if _, err := reached.ReadFrom(bytes.NewReader(body[:bmLen])); err != nil {
		return nil, fmt.Errorf("%w: bitmap: %w", ErrCorrupt, err)
	}
	body = body[bmLen:]
	if !reached.IsEmpty() && reached.Maximum() >= n {
		return nil, fmt.Errorf("%w: vertex %d out of range [0, %d)", ErrCorrupt, reached.Maximum(), n)
	}

	dist := make([]int64, n)
	for i := range dist {
		dist[i] = -1
	}
	it := reached.Iterator()
	for it.HasNext() {
		v := it.Next()
		u, k := binary.Uvarint(body)
		if k <= 0 {
			return nil, fmt.Errorf("%w: distance of vertex %d", ErrCorrupt, v)
		}
		d, err := conv.Uint64ToInt64(u)
		if err != nil {
			return nil, fmt.Errorf("%w: distance of vertex %d: %w", ErrCorrupt, v, err)
		}
		dist[v] = d
		body = body[k:]
	}
	if len(body) != 0 {
		return nil, fmt.Errorf("%w: %d trailing body bytes", ErrCorrupt, len(body))
	}
	return dist, nil
}

// maxBodySize bounds the body of a snapshot of n vertices: the bitmap length,
// a run-optimized roaring bitmap (at most a full bitmap container plus its
// header per 2^16 vertices) and one distance per vertex.
func maxBodySize(n uint32) uint64 {
	containers := uint64(n)>>16 + 1
	bitmap := 16 + containers*(8+8192+2)
	return binary.MaxVarintLen64 + bitmap + uint64(n)*binary.MaxVarintLen64
}

// Write encodes dist and writes it to w.
func Write(w io.Writer, dist []int64, c Compression) error {
	data, err := Encode(dist, c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read reads a whole snapshot from r and decodes it.
func Read(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
