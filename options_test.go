package heif

import "testing"

func fullDecodeOptions() *DecodeOptions {
	return &DecodeOptions{
		IgnoreTransformations: true,
		ConvertHDRToEightBit:  true,
		Strict:                true,
		DecoderID:             "libde265",
		ColorConversion: ColorConversionOptions{
			PreferredDownsampling: ChromaDownsamplingSharpYUV,
			PreferredUpsampling:   ChromaUpsamplingBilinear,
			OnlyUsePreferred:      true,
		},
	}
}

// The native options block carries the struct version of the runtime
// library; fields that version does not define must be left untouched.
func TestDecodeOptionsVersionOverlay(t *testing.T) {
	for version := uint8(1); version <= 5; version++ {
		f := newDecodeOptionsFixture(version)
		f.apply(fullDecodeOptions())
		s := f.snapshot()
		f.free()

		if !s.IgnoreTransformations {
			t.Errorf("v%d: ignore_transformations not applied", version)
		}
		if s.ConvertHDRToEightBit != (version >= 2) {
			t.Errorf("v%d: convert_hdr_to_8bit = %t", version, s.ConvertHDRToEightBit)
		}
		if s.Strict != (version >= 3) {
			t.Errorf("v%d: strict_decoding = %t", version, s.Strict)
		}
		if s.HasDecoderID != (version >= 4) {
			t.Errorf("v%d: decoder_id set = %t", version, s.HasDecoderID)
		}
		if version >= 4 && s.DecoderID != "libde265" {
			t.Errorf("v%d: decoder_id = %q", version, s.DecoderID)
		}
		wantDown := ChromaDownsamplingAlgorithm(0)
		wantUp := ChromaUpsamplingAlgorithm(0)
		if version >= 5 {
			wantDown = ChromaDownsamplingSharpYUV
			wantUp = ChromaUpsamplingBilinear
		}
		if s.Downsampling != wantDown || s.Upsampling != wantUp {
			t.Errorf("v%d: color conversion = %v/%v, want %v/%v",
				version, s.Downsampling, s.Upsampling, wantDown, wantUp)
		}
		if s.OnlyUsePreferred != (version >= 5) {
			t.Errorf("v%d: only_use_preferred = %t", version, s.OnlyUsePreferred)
		}
	}
}

func TestDecodeOptionsEmptyDecoderID(t *testing.T) {
	f := newDecodeOptionsFixture(5)
	defer f.free()
	f.apply(&DecodeOptions{})
	if s := f.snapshot(); s.HasDecoderID {
		t.Fatal("empty DecoderID produced a decoder_id pointer")
	}
}

func fullEncodeOptions() *EncodeOptions {
	return &EncodeOptions{
		SaveAlphaChannel:                   true,
		MacOSCompatibilityWorkaround:       true,
		SaveTwoColrBoxes:                   true,
		OutputNclx:                         &NclxColorProfile{ColorPrimaries: ColorPrimariesITUR_BT_709},
		MacOSCompatibilityWorkaroundNoNclx: true,
		ImageOrientation:                   OrientationRotate90CW,
		ColorConversion: ColorConversionOptions{
			PreferredDownsampling: ChromaDownsamplingAverage,
		},
		PreferUncCShortForm: true,
	}
}

func TestEncodeOptionsVersionOverlay(t *testing.T) {
	for version := uint8(1); version <= 7; version++ {
		f := newEncodeOptionsFixture(version)
		f.apply(fullEncodeOptions())
		s := f.snapshot()
		f.free()

		if !s.SaveAlphaChannel {
			t.Errorf("v%d: save_alpha_channel not applied", version)
		}
		if s.MacOSCompatibilityWorkaround != (version >= 2) {
			t.Errorf("v%d: macOS workaround = %t", version, s.MacOSCompatibilityWorkaround)
		}
		if s.SaveTwoColrBoxes != (version >= 3) {
			t.Errorf("v%d: two colr boxes = %t", version, s.SaveTwoColrBoxes)
		}
		if s.HasOutputNclx != (version >= 4) {
			t.Errorf("v%d: output nclx set = %t", version, s.HasOutputNclx)
		}
		if s.MacOSCompatibilityWorkaroundNoNclx != (version >= 4) {
			t.Errorf("v%d: no-nclx workaround = %t", version, s.MacOSCompatibilityWorkaroundNoNclx)
		}
		wantOrientation := OrientationNormal
		if version >= 5 {
			wantOrientation = OrientationRotate90CW
		}
		if s.ImageOrientation != wantOrientation {
			t.Errorf("v%d: orientation = %v, want %v", version, s.ImageOrientation, wantOrientation)
		}
		if (s.Downsampling == ChromaDownsamplingAverage) != (version >= 6) {
			t.Errorf("v%d: downsampling = %v", version, s.Downsampling)
		}
		if s.PreferUncCShortForm != (version >= 7) {
			t.Errorf("v%d: prefer_uncC_short_form = %t", version, s.PreferUncCShortForm)
		}
	}
}

func TestEncodeOptionsZeroOrientationKeepsDefault(t *testing.T) {
	f := newEncodeOptionsFixture(7)
	defer f.free()
	f.apply(DefaultEncodeOptions())
	s := f.snapshot()
	if s.ImageOrientation != OrientationNormal {
		t.Fatalf("orientation = %v, want normal", s.ImageOrientation)
	}
	if !s.SaveAlphaChannel {
		t.Fatal("default options dropped the alpha channel")
	}
	if s.HasOutputNclx {
		t.Fatal("default options produced an nclx override")
	}
}
