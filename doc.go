// Package huffzip implements a static Huffman compressor for byte streams,
// together with the small container format that carries the code table
// alongside the encoded payload.
//
// A container is laid out as follows.  All integers are little-endian, and
// code bits are packed most-significant-bit first within each byte.
//
//     table_entry_count   uint32
//     table_entry         repeated table_entry_count times:
//         symbol            1 byte
//         code_bit_length   1 byte, 1 .. 255
//         code_bits         ceil(code_bit_length / 8) bytes
//     padding_bit_count   1 byte, 0 .. 7
//     payload             remaining bytes
//
// The code table is stored explicitly, so the decoder never has to rebuild
// the Huffman tree and the tree shape chosen by the encoder does not matter
// for compatibility.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffzip
