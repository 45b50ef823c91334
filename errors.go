package ndtf

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidFormat indicates unsupported texel format.
	ErrInvalidFormat = errors.New("invalid texel format")
	// ErrInvalidDimensions indicates a dimension count outside 2..5.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrHeaderTooShort indicates input shorter than the fixed header.
	ErrHeaderTooShort = errors.New("header too short")
	// ErrBadSignature indicates a signature mismatch.
	ErrBadSignature = errors.New("bad signature")
	// ErrUnsupportedVersion indicates a version newer than supported.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrSizeMismatch indicates payload size differs from the header-derived size.
	ErrSizeMismatch = errors.New("payload size mismatch")
	// ErrCompress indicates payload compression failed.
	ErrCompress = errors.New("compress payload failed")
	// ErrDecompress indicates payload decompression failed.
	ErrDecompress = errors.New("decompress payload failed")
	// ErrOutOfRange indicates a coordinate outside the texel array.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidFile indicates an operation on a released or empty file.
	ErrInvalidFile = errors.New("invalid file")
	// ErrChannelType indicates a channel type that does not match the format.
	ErrChannelType = errors.New("channel type mismatch")
	// ErrOpenFile indicates file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrReadFile indicates reading the stream failed.
	ErrReadFile = errors.New("read file failed")
	// ErrWriteFile indicates writing the stream failed.
	ErrWriteFile = errors.New("write file failed")
	// ErrDDSHeaderRead indicates DDS header read failed.
	ErrDDSHeaderRead = errors.New("reading DDS header failed")
	// ErrDDSDX10Read indicates DDS DX10 header read failed.
	ErrDDSDX10Read = errors.New("reading DDS DX10 header failed")
	// ErrDDSDataRead indicates DDS surface data read failed.
	ErrDDSDataRead = errors.New("reading DDS data failed")
	// ErrUnknownDDSFormat indicates unsupported DDS surface format.
	ErrUnknownDDSFormat = errors.New("unknown DDS format")
	// ErrDecodeImage indicates DDS surface decode failed.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrEncodeImage indicates DDS surface encode failed.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrWriteDDSMagic indicates DDS magic write failed.
	ErrWriteDDSMagic = errors.New("writing DDS magic failed")
	// ErrWriteDDSHeader indicates DDS header write failed.
	ErrWriteDDSHeader = errors.New("writing DDS header failed")
	// ErrWriteDDSData indicates DDS surface write failed.
	ErrWriteDDSData = errors.New("writing DDS data failed")
	// ErrChunkTooLarge indicates a compressed chunk exceeds allowed size.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = errors.New("LZ4 block length mismatch")
)

// ReasonCode classifies a failure without changing success/failure semantics.
type ReasonCode uint8

// Reason codes.
const (
	ReasonNone ReasonCode = iota
	ReasonMalformedHeader
	ReasonSizeMismatch
	ReasonCompressionFailure
	ReasonAllocationFailure
	ReasonOutOfRange
	ReasonInvalidContainer
	ReasonIO
	ReasonOther
)

var reasonNames = [...]string{
	ReasonNone:               "none",
	ReasonMalformedHeader:    "malformed header",
	ReasonSizeMismatch:       "size mismatch",
	ReasonCompressionFailure: "compression failure",
	ReasonAllocationFailure:  "allocation failure",
	ReasonOutOfRange:         "out of range",
	ReasonInvalidContainer:   "invalid container",
	ReasonIO:                 "io",
	ReasonOther:              "other",
}

func (r ReasonCode) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Reason returns the reason code for an error returned by this package.
func Reason(err error) ReasonCode {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrHeaderTooShort),
		errors.Is(err, ErrBadSignature),
		errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrInvalidDimensions):
		return ReasonMalformedHeader
	case errors.Is(err, ErrSizeMismatch):
		return ReasonSizeMismatch
	case errors.Is(err, ErrCompress), errors.Is(err, ErrDecompress):
		return ReasonCompressionFailure
	case errors.Is(err, ErrSizeOverflow):
		return ReasonAllocationFailure
	case errors.Is(err, ErrOutOfRange):
		return ReasonOutOfRange
	case errors.Is(err, ErrInvalidFile):
		return ReasonInvalidContainer
	case errors.Is(err, ErrOpenFile),
		errors.Is(err, ErrCreateFile),
		errors.Is(err, ErrReadFile),
		errors.Is(err, ErrWriteFile):
		return ReasonIO
	default:
		return ReasonOther
	}
}
