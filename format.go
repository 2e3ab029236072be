package heif

import (
	"bytes"
	"image"
	"image/color"
	"io"
)

// Registration with the standard image package, so image.Decode
// recognizes HEIF and AVIF files by their ftyp brands.
func init() {
	image.RegisterFormat("heif", "????ftypheic", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftypheim", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftypheis", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftypheix", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftyphevc", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftyphevm", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftyphevs", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftypmif1", Decode, DecodeConfig)
	image.RegisterFormat("heif", "????ftypmsf1", Decode, DecodeConfig)
	image.RegisterFormat("avif", "????ftypavif", Decode, DecodeConfig)
	image.RegisterFormat("avif", "????ftypavis", Decode, DecodeConfig)
}

func primaryHandle(r io.Reader) (*Context, *ImageHandle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := NewContext()
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.ReadFromReader(bytes.NewReader(data)); err != nil {
		ctx.Close()
		return nil, nil, err
	}
	handle, err := ctx.GetPrimaryImageHandle()
	if err != nil {
		ctx.Close()
		return nil, nil, err
	}
	return ctx, handle, nil
}

// Decode reads a HEIF or AVIF image from r and returns the primary image
// as an image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	ctx, handle, err := primaryHandle(r)
	if err != nil {
		return nil, err
	}
	defer ctx.Close()
	defer handle.Close()

	img, err := handle.Decode(ColorspaceRGB, ChromaInterleavedRGBA, nil)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	plane := img.GetPlane(ChannelInterleaved)
	if plane == nil {
		return nil, &Error{
			Code:    ErrorCodeDecoderPlugin,
			Message: "heif: decoded image has no interleaved plane",
		}
	}
	out := image.NewNRGBA(image.Rect(0, 0, plane.Width, plane.Height))
	rowLen := plane.Width * 4
	for y := 0; y < plane.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+rowLen], plane.Data[y*plane.Stride:])
	}
	return out, nil
}

// DecodeConfig returns the dimensions and color model of the primary
// image without decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	ctx, handle, err := primaryHandle(r)
	if err != nil {
		return image.Config{}, err
	}
	defer ctx.Close()
	defer handle.Close()

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      handle.GetWidth(),
		Height:     handle.GetHeight(),
	}, nil
}

// EncodeFromImage compresses a standard image.Image into ctx with the
// given encoder. The pixels are converted to interleaved RGBA first.
func (c *Context) EncodeFromImage(src image.Image, enc *Encoder, options *EncodeOptions) (*ImageHandle, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	img, err := NewImage(width, height, ColorspaceRGB, ChromaInterleavedRGBA)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	if err := img.AddPlane(ChannelInterleaved, width, height, 8); err != nil {
		return nil, err
	}
	plane := img.GetPlane(ChannelInterleaved)
	if plane == nil {
		return nil, &Error{
			Code:    ErrorCodeMemoryAllocation,
			Message: "heif: cannot allocate interleaved plane",
		}
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok || !bounds.Min.Eq(image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				nrgba.Set(x, y, src.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	}
	plane.SetData(nrgba.Pix, nrgba.Stride)

	return c.EncodeImage(img, enc, options)
}
