// Command goheif inspects HEIF/HEIC/AVIF files and converts between them
// and PNG/JPEG.
//
// Usage:
//
//	goheif -i in.heic -o out.png
//	goheif -i in.png -o out.avif --quality 80
//	goheif -i in.heic --info
//	goheif --plugins
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	heif "github.com/GreatValueCreamSoda/goheif"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

type LoggingLevel int

const (
	LogError LoggingLevel = iota
	LogInfo
	LogDebug
)

var currentLogLevel = LogInfo

const logPrefixWidth = 9 // Fits "[DEBUG] "

func logf(level LoggingLevel, format string, args ...any) {
	if level > currentLogLevel {
		return
	}

	prefix := "[INFO] "
	switch level {
	case LogDebug:
		prefix = "[DEBUG]"
	case LogError:
		prefix = "[ERROR]"
	}

	padded := fmt.Sprintf("%-*s", logPrefixWidth, prefix)

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	log.Printf("%s%s", padded, msg)
}

func parseLogLevel(s string) (LoggingLevel, error) {
	switch strings.ToLower(s) {
	case "error":
		return LogError, nil
	case "info":
		return LogInfo, nil
	case "debug":
		return LogDebug, nil
	default:
		return 0, fmt.Errorf("invalid log level: %q", s)
	}
}

func main() {
	log.SetFlags(0)

	input := pflag.StringP("input", "i", "", "input file (heic/heif/avif/png/jpeg)")
	output := pflag.StringP("output", "o", "", "output file (heic/heif/avif/png/jpeg)")
	quality := pflag.IntP("quality", "q", 90, "lossy quality 0-100 for HEIF/AVIF output")
	lossless := pflag.Bool("lossless", false, "encode HEIF/AVIF output losslessly")
	decoderID := pflag.String("decoder", "", "decoder plugin id to use (see --plugins)")
	thumbnail := pflag.Int("thumbnail", 0, "also store a thumbnail fitting the given box size")
	info := pflag.Bool("info", false, "print information about the input file and exit")
	plugins := pflag.Bool("plugins", false, "list encoder and decoder plugins and exit")
	logLevelStr := pflag.String("loglevel", "info", "log level: error, info, debug")
	pflag.Parse()

	level, err := parseLogLevel(*logLevelStr)
	if err != nil {
		logf(LogError, "%v", err)
		os.Exit(2)
	}
	currentLogLevel = level

	logf(LogDebug, "libheif %s", heif.Version())

	switch {
	case *plugins:
		listPlugins()
	case *info:
		if *input == "" {
			logf(LogError, "--info needs an input file (-i)")
			os.Exit(2)
		}
		if err := printInfo(*input); err != nil {
			logf(LogError, "%v", err)
			os.Exit(1)
		}
	default:
		if *input == "" || *output == "" {
			pflag.Usage()
			os.Exit(2)
		}
		cfg := convertConfig{
			quality:   *quality,
			lossless:  *lossless,
			decoderID: *decoderID,
			thumbnail: *thumbnail,
		}
		if err := convert(*input, *output, cfg); err != nil {
			logf(LogError, "%v", err)
			os.Exit(1)
		}
	}
}

func isHeifPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".heic", ".heif", ".avif":
		return true
	}
	return false
}

func compressionForPath(path string) heif.Compression {
	if strings.ToLower(filepath.Ext(path)) == ".avif" {
		return heif.CompressionAV1
	}
	return heif.CompressionHEVC
}

type convertConfig struct {
	quality   int
	lossless  bool
	decoderID string
	thumbnail int
}

func convert(input, output string, cfg convertConfig) error {
	src, err := readImage(input, cfg.decoderID)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	bounds := src.Bounds()
	logf(LogInfo, "Read %s (%dx%d)", input, bounds.Dx(), bounds.Dy())

	if err := writeImage(output, src, cfg); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if stat, err := os.Stat(output); err == nil {
		logf(LogInfo, "Wrote %s (%s)", output, humanize.Bytes(uint64(stat.Size())))
	}
	return nil
}

func readImage(path, decoderID string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !isHeifPath(path) {
		img, format, err := image.Decode(f)
		if err != nil {
			return nil, err
		}
		logf(LogDebug, "Decoded %s input with the standard image registry", format)
		return img, nil
	}

	ctx, err := heif.NewContext()
	if err != nil {
		return nil, err
	}
	defer ctx.Close()
	if err := ctx.ReadFromReader(f); err != nil {
		return nil, err
	}

	handle, err := ctx.GetPrimaryImageHandle()
	if err != nil {
		return nil, err
	}
	defer handle.Close()
	logf(LogDebug, "Primary image: %dx%d, %d luma bits, alpha=%t",
		handle.GetWidth(), handle.GetHeight(),
		handle.GetLumaBitsPerPixel(), handle.HasAlphaChannel())

	options := &heif.DecodeOptions{
		ConvertHDRToEightBit: true,
		DecoderID:            decoderID,
	}
	img, err := handle.Decode(heif.ColorspaceRGB, heif.ChromaInterleavedRGBA, options)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	plane := img.GetPlane(heif.ChannelInterleaved)
	if plane == nil {
		return nil, fmt.Errorf("decoded image has no interleaved plane")
	}
	out := image.NewNRGBA(image.Rect(0, 0, plane.Width, plane.Height))
	rowLen := plane.Width * 4
	for y := 0; y < plane.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+rowLen], plane.Data[y*plane.Stride:])
	}
	return out, nil
}

func writeImage(path string, src image.Image, cfg convertConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !isHeifPath(path) {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png":
			return png.Encode(f, src)
		case ".jpg", ".jpeg":
			return jpeg.Encode(f, src, &jpeg.Options{Quality: cfg.quality})
		default:
			return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
		}
	}

	ctx, err := heif.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	enc, err := ctx.GetEncoderForFormat(compressionForPath(path))
	if err != nil {
		return err
	}
	defer enc.Close()
	logf(LogDebug, "Using encoder %s", enc.GetName())

	if cfg.lossless {
		if err := enc.SetLossless(heif.LosslessModeEnabled); err != nil {
			return err
		}
	} else if err := enc.SetQuality(cfg.quality); err != nil {
		return err
	}
	if currentLogLevel >= LogDebug {
		if err := enc.SetLoggingLevel(heif.LoggingLevelBasic); err != nil {
			logf(LogDebug, "Encoder does not support logging levels: %v", err)
		}
	}

	handle, err := ctx.EncodeFromImage(src, enc, heif.DefaultEncodeOptions())
	if err != nil {
		return err
	}
	defer handle.Close()

	if cfg.thumbnail > 0 {
		if err := encodeThumbnail(ctx, src, handle, enc, cfg.thumbnail); err != nil {
			return err
		}
	}

	return ctx.Write(f)
}

func encodeThumbnail(ctx *heif.Context, src image.Image, master *heif.ImageHandle, enc *heif.Encoder, bboxSize int) error {
	img, err := buildInterleavedImage(src)
	if err != nil {
		return err
	}
	defer img.Close()

	thumb, err := ctx.EncodeThumbnail(img, master, enc, heif.DefaultEncodeOptions(), bboxSize)
	if err != nil {
		return err
	}
	if thumb == nil {
		logf(LogDebug, "Image fits in %dpx box, no thumbnail stored", bboxSize)
		return nil
	}
	defer thumb.Close()
	logf(LogDebug, "Stored %dx%d thumbnail", thumb.GetWidth(), thumb.GetHeight())
	return nil
}

func buildInterleavedImage(src image.Image) (*heif.Image, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	img, err := heif.NewImage(width, height, heif.ColorspaceRGB, heif.ChromaInterleavedRGBA)
	if err != nil {
		return nil, err
	}
	if err := img.AddPlane(heif.ChannelInterleaved, width, height, 8); err != nil {
		img.Close()
		return nil, err
	}
	plane := img.GetPlane(heif.ChannelInterleaved)
	if plane == nil {
		img.Close()
		return nil, fmt.Errorf("cannot allocate interleaved plane")
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
	return img, nil
}

func printInfo(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 16)
	n, _ := f.Read(header)
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}

	fmt.Printf("file:        %s (%s)\n", path, humanize.Bytes(uint64(stat.Size())))
	fmt.Printf("libheif:     %s\n", heif.Version())
	fmt.Printf("filetype:    %s\n", filetypeString(heif.CheckFiletype(header[:n])))

	ctx, err := heif.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Close()
	if err := ctx.ReadFromReader(f); err != nil {
		return err
	}

	primaryID, err := ctx.GetPrimaryImageID()
	if err != nil {
		return err
	}
	ids := ctx.GetListOfTopLevelImageIDs()
	fmt.Printf("images:      %d\n", len(ids))

	for _, id := range ids {
		handle, err := ctx.GetImageHandle(id)
		if err != nil {
			return err
		}
		printHandleInfo(handle, id, id == primaryID)
		handle.Close()
	}
	return nil
}

func printHandleInfo(handle *heif.ImageHandle, id heif.ItemID, primary bool) {
	marker := ""
	if primary {
		marker = " (primary)"
	}
	fmt.Printf("image #%d%s\n", id, marker)
	fmt.Printf("  size:      %dx%d\n", handle.GetWidth(), handle.GetHeight())
	fmt.Printf("  depth:     %d luma / %d chroma bits\n",
		handle.GetLumaBitsPerPixel(), handle.GetChromaBitsPerPixel())
	fmt.Printf("  alpha:     %t (premultiplied: %t)\n",
		handle.HasAlphaChannel(), handle.IsPremultipliedAlpha())

	if n := handle.GetNumberOfThumbnails(); n > 0 {
		fmt.Printf("  thumbnails: %d\n", n)
	}
	if handle.HasDepthImage() {
		fmt.Printf("  depth images: %d\n", handle.GetNumberOfDepthImages())
	}
	if t := handle.GetColorProfileType(); t != heif.ColorProfileTypeNotPresent {
		fmt.Printf("  color profile: %s\n", profileString(t))
	}
	for _, block := range handle.GetMetadataBlocks("") {
		label := block.Type
		if block.ContentType != "" {
			label += " (" + block.ContentType + ")"
		}
		fmt.Printf("  metadata:  #%d %s\n", block.ID, label)
	}
	if n, err := handle.GetNumberOfRegionItems(); err == nil && n > 0 {
		fmt.Printf("  region items: %d\n", n)
	}
}

func filetypeString(r heif.FiletypeResult) string {
	switch r {
	case heif.FiletypeYesSupported:
		return "HEIF, supported"
	case heif.FiletypeYesUnsupported:
		return "HEIF, unsupported compression"
	case heif.FiletypeMaybe:
		return "possibly HEIF"
	default:
		return "not a HEIF file"
	}
}

func profileString(t heif.ColorProfileType) string {
	switch t {
	case heif.ColorProfileTypeNclx:
		return "nclx"
	case heif.ColorProfileTypeRICC:
		return "restricted ICC"
	case heif.ColorProfileTypeProf:
		return "ICC"
	default:
		return "none"
	}
}

func listPlugins() {
	ctx, err := heif.NewContext()
	if err != nil {
		logf(LogError, "%v", err)
		os.Exit(1)
	}
	defer ctx.Close()

	fmt.Println("encoders:")
	for _, d := range ctx.GetEncoderDescriptors(heif.CompressionUndefined, "") {
		caps := []string{}
		if d.SupportsLossyCompression() {
			caps = append(caps, "lossy")
		}
		if d.SupportsLosslessCompression() {
			caps = append(caps, "lossless")
		}
		fmt.Printf("  %-12s %s [%s]\n", d.GetIDName(), d.GetName(), strings.Join(caps, ", "))

		if currentLogLevel >= LogDebug {
			printEncoderParameters(ctx, d)
		}
	}

	decoders, err := heif.GetDecoderDescriptors(heif.CompressionUndefined)
	if err != nil {
		logf(LogInfo, "Decoder enumeration unavailable: %v", err)
		return
	}
	fmt.Println("decoders:")
	for _, d := range decoders {
		fmt.Printf("  %-12s %s\n", d.GetIDName(), d.GetName())
	}
}

func printEncoderParameters(ctx *heif.Context, d *heif.EncoderDescriptor) {
	enc, err := ctx.GetEncoder(d)
	if err != nil {
		logf(LogDebug, "Cannot instantiate %s: %v", d.GetIDName(), err)
		return
	}
	defer enc.Close()

	for _, p := range enc.ListParameters() {
		switch p.GetType() {
		case heif.EncoderParameterTypeInteger:
			if minimum, maximum, err := p.GetValidIntegerRange(); err == nil {
				fmt.Printf("    %-20s integer [%d..%d]\n", p.GetName(), minimum, maximum)
				continue
			}
			fmt.Printf("    %-20s integer\n", p.GetName())
		case heif.EncoderParameterTypeBoolean:
			fmt.Printf("    %-20s boolean\n", p.GetName())
		case heif.EncoderParameterTypeString:
			if values, err := p.GetValidStringValues(); err == nil && len(values) > 0 {
				fmt.Printf("    %-20s string {%s}\n", p.GetName(), strings.Join(values, ", "))
				continue
			}
			fmt.Printf("    %-20s string\n", p.GetName())
		}
	}
}
