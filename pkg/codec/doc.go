// Package codec implements the binary record format used to bulk-export
// and re-import the keys held by a working-set tree.
//
// # Record Format
//
//	[CRC32(4)][KeySize(4)][Key]
//
// The CRC32 checksum covers KeySize and Key, so a truncated or corrupted
// export is caught on Decode rather than silently re-seeding the cascade
// with a partial key.
//
// # Usage
//
//	codec := codec.NewRecordCodec()
//
//	encoded, err := codec.Encode([]byte("some-key"))
//	if err != nil {
//	    return err
//	}
//
//	record, err := codec.Decode(encoded)
//	if err != nil {
//	    return err // truncated or corrupted
//	}
package codec
