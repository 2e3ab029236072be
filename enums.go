package heif

// #include "goheif.h"
import "C"

// Compression identifies the codec used for the image data inside the
// container.
type Compression int

const (
	CompressionUndefined    Compression = C.heif_compression_undefined
	CompressionHEVC         Compression = C.heif_compression_HEVC
	CompressionAVC          Compression = C.heif_compression_AVC
	CompressionJPEG         Compression = C.heif_compression_JPEG
	CompressionAV1          Compression = C.heif_compression_AV1
	CompressionVVC          Compression = C.heif_compression_VVC
	CompressionEVC          Compression = C.heif_compression_EVC
	CompressionJPEG2000     Compression = C.heif_compression_JPEG2000
	CompressionUncompressed Compression = C.heif_compression_uncompressed
	CompressionMask         Compression = C.heif_compression_mask
)

// Chroma describes the chroma subsampling or interleaving of pixel data.
type Chroma int

const (
	ChromaUndefined             Chroma = C.heif_chroma_undefined
	ChromaMonochrome            Chroma = C.heif_chroma_monochrome
	Chroma420                   Chroma = C.heif_chroma_420
	Chroma422                   Chroma = C.heif_chroma_422
	Chroma444                   Chroma = C.heif_chroma_444
	ChromaInterleavedRGB        Chroma = C.heif_chroma_interleaved_RGB
	ChromaInterleavedRGBA       Chroma = C.heif_chroma_interleaved_RGBA
	ChromaInterleavedRRGGBBBE   Chroma = C.heif_chroma_interleaved_RRGGBB_BE
	ChromaInterleavedRRGGBBAABE Chroma = C.heif_chroma_interleaved_RRGGBBAA_BE
	ChromaInterleavedRRGGBBLE   Chroma = C.heif_chroma_interleaved_RRGGBB_LE
	ChromaInterleavedRRGGBBAALE Chroma = C.heif_chroma_interleaved_RRGGBBAA_LE
)

// Colorspace identifies the color model of decoded pixel data.
type Colorspace int

const (
	ColorspaceUndefined  Colorspace = C.heif_colorspace_undefined
	ColorspaceYCbCr      Colorspace = C.heif_colorspace_YCbCr
	ColorspaceRGB        Colorspace = C.heif_colorspace_RGB
	ColorspaceMonochrome Colorspace = C.heif_colorspace_monochrome
)

// Channel selects one plane of an image.
type Channel int

const (
	ChannelY           Channel = C.heif_channel_Y
	ChannelCb          Channel = C.heif_channel_Cb
	ChannelCr          Channel = C.heif_channel_Cr
	ChannelR           Channel = C.heif_channel_R
	ChannelG           Channel = C.heif_channel_G
	ChannelB           Channel = C.heif_channel_B
	ChannelAlpha       Channel = C.heif_channel_Alpha
	ChannelInterleaved Channel = C.heif_channel_interleaved
)

// Orientation describes the rotation/mirroring to apply when displaying an
// image, using the EXIF orientation values.
type Orientation int

const (
	OrientationNormal                          Orientation = C.heif_orientation_normal
	OrientationFlipHorizontally                Orientation = C.heif_orientation_flip_horizontally
	OrientationRotate180                       Orientation = C.heif_orientation_rotate_180
	OrientationFlipVertically                  Orientation = C.heif_orientation_flip_vertically
	OrientationRotate90CWThenFlipHorizontally  Orientation = C.heif_orientation_rotate_90_cw_then_flip_horizontally
	OrientationRotate90CW                      Orientation = C.heif_orientation_rotate_90_cw
	OrientationRotate90CWThenFlipVertically    Orientation = C.heif_orientation_rotate_90_cw_then_flip_vertically
	OrientationRotate270CW                     Orientation = C.heif_orientation_rotate_270_cw
)

// ChromaDownsamplingAlgorithm selects how chroma is reduced when encoding
// subsampled formats. The zero value leaves the library default in place.
type ChromaDownsamplingAlgorithm int

const (
	ChromaDownsamplingNearestNeighbor ChromaDownsamplingAlgorithm = C.heif_chroma_downsampling_nearest_neighbor
	ChromaDownsamplingAverage         ChromaDownsamplingAlgorithm = C.heif_chroma_downsampling_average
	ChromaDownsamplingSharpYUV        ChromaDownsamplingAlgorithm = C.heif_chroma_downsampling_sharp_yuv
)

// ChromaUpsamplingAlgorithm selects how chroma is expanded when decoding
// subsampled formats. The zero value leaves the library default in place.
type ChromaUpsamplingAlgorithm int

const (
	ChromaUpsamplingNearestNeighbor ChromaUpsamplingAlgorithm = C.heif_chroma_upsampling_nearest_neighbor
	ChromaUpsamplingBilinear        ChromaUpsamplingAlgorithm = C.heif_chroma_upsampling_bilinear
)

// LosslessMode switches an encoder between lossy and lossless operation.
type LosslessMode int

const (
	LosslessModeDisabled LosslessMode = iota
	LosslessModeEnabled
)

// LoggingLevel controls how verbose an encoder plugin is.
type LoggingLevel int

const (
	LoggingLevelNone LoggingLevel = iota
	LoggingLevelBasic
	LoggingLevelAdvanced
	LoggingLevelFull
)
