package codec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// headerSize is CRC32(4) + KeySize(4).
const headerSize = 8

// Record is a single key prepared for bulk export/import: the working-set
// tree's public API only ever sees a key value, so unlike a log-structured
// store's record this carries no value payload, just integrity metadata.
type Record struct {
	CRC32   uint32
	KeySize uint32
	Key     []byte
}

// RecordCodec serializes and deserializes Records.
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance.
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// NewRecord creates a new record for key.
func NewRecord(key []byte) *Record {
	return &Record{KeySize: uint32(len(key)), Key: key}
}

// Size returns the total size of the record when encoded.
func (r *Record) Size() int {
	return headerSize + len(r.Key)
}

// calculateCRC32 computes the CRC32 checksum over KeySize and Key.
func (r *Record) calculateCRC32() uint32 {
	crc := crc32.NewIEEE()
	_ = binary.Write(crc, binary.LittleEndian, r.KeySize)
	crc.Write(r.Key)
	return crc.Sum32()
}

// Validate checks the record's CRC32 against its declared contents.
func (r *Record) Validate() error {
	if int(r.KeySize) != len(r.Key) {
		return fmt.Errorf("codec: key size mismatch: declared %d, actual %d", r.KeySize, len(r.Key))
	}
	if got := r.calculateCRC32(); got != r.CRC32 {
		return fmt.Errorf("codec: CRC32 mismatch: declared %08x, computed %08x", r.CRC32, got)
	}
	return nil
}

// Encode serializes key into a binary record:
// [CRC32(4)][KeySize(4)][Key].
func (c *RecordCodec) Encode(key []byte) ([]byte, error) {
	r := NewRecord(key)
	r.CRC32 = r.calculateCRC32()

	buf := make([]byte, r.Size())
	binary.LittleEndian.PutUint32(buf[0:4], r.CRC32)
	binary.LittleEndian.PutUint32(buf[4:8], r.KeySize)
	copy(buf[headerSize:], r.Key)
	return buf, nil
}

// Decode deserializes a binary record, returning the parsed Record after
// validating its CRC32.
func (c *RecordCodec) Decode(data []byte) (*Record, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("codec: record too short: %d bytes, need at least %d", len(data), headerSize)
	}

	r := &Record{
		CRC32:   binary.LittleEndian.Uint32(data[0:4]),
		KeySize: binary.LittleEndian.Uint32(data[4:8]),
	}

	want := headerSize + int(r.KeySize)
	if len(data) < want {
		return nil, fmt.Errorf("codec: record truncated: have %d bytes, need %d", len(data), want)
	}
	r.Key = append([]byte(nil), data[headerSize:want]...)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
