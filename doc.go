/*
Package ndtf implements NDTF (N-Dimensional Texel File) read/write with
optional whole-payload compression.

An NDTF file is a fixed 32-byte header followed by a texel payload. The
header names the texel format, the dimensionality (2 to 5 axes) and the
extent of every axis. The payload is stored axis-0-fastest with channels
interleaved, either raw or compressed behind an 8-byte uncompressed size.

The package covers the practical workflows: decode a file and optionally
reformat it into a desired texel format, address single texels by
coordinate, and encode the result back with or without compression.
Reformatting between integer and float formats rescales values between the
full integer range and [0,1]; narrowing is lossy and an integer to float to
integer round trip may differ by one unit.

A File is not safe for concurrent use.
*/
package ndtf
