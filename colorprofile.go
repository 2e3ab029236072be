package heif

/*
#include <stdlib.h>
#include "goheif.h"
*/
import "C"
import (
	"runtime"
	"unsafe"
)

// ColorProfileType identifies which kind of color profile is stored with
// an image.
type ColorProfileType int

const (
	ColorProfileTypeNotPresent ColorProfileType = C.heif_color_profile_type_not_present
	ColorProfileTypeNclx       ColorProfileType = C.heif_color_profile_type_nclx
	ColorProfileTypeRICC       ColorProfileType = C.heif_color_profile_type_rICC
	ColorProfileTypeProf       ColorProfileType = C.heif_color_profile_type_prof
)

// NclxColorProfile describes colorimetry with the CICP code points from
// ITU-T H.273: color primaries, transfer characteristics and matrix
// coefficients, plus the full/limited range flag.
type NclxColorProfile struct {
	ColorPrimaries          int
	TransferCharacteristics int
	MatrixCoefficients      int
	FullRange               bool
}

// Commonly used CICP code points.
const (
	ColorPrimariesITUR_BT_709    = 1
	ColorPrimariesUnspecified    = 2
	ColorPrimariesITUR_BT_601    = 6
	ColorPrimariesITUR_BT_2020   = 9
	ColorPrimariesSMPTE_EG_432_1 = 12

	TransferCharacteristicsITUR_BT_709   = 1
	TransferCharacteristicsUnspecified   = 2
	TransferCharacteristicsITUR_BT_601   = 6
	TransferCharacteristicsSRGB          = 13
	TransferCharacteristicsSMPTE_ST_2084 = 16

	MatrixCoefficientsRGB          = 0
	MatrixCoefficientsITUR_BT_709  = 1
	MatrixCoefficientsUnspecified  = 2
	MatrixCoefficientsITUR_BT_601  = 6
	MatrixCoefficientsITUR_BT_2020 = 9
)

func (p *NclxColorProfile) fillNative(n *C.struct_heif_color_profile_nclx) {
	n.color_primaries = C.int(p.ColorPrimaries)
	n.transfer_characteristics = C.int(p.TransferCharacteristics)
	n.matrix_coefficients = C.int(p.MatrixCoefficients)
	n.full_range_flag = cbool(p.FullRange)
}

func nclxFromNative(n *C.struct_heif_color_profile_nclx) *NclxColorProfile {
	return &NclxColorProfile{
		ColorPrimaries:          int(n.color_primaries),
		TransferCharacteristics: int(n.transfer_characteristics),
		MatrixCoefficients:      int(n.matrix_coefficients),
		FullRange:               n.full_range_flag != 0,
	}
}

// GetColorProfileType returns which kind of color profile the image
// handle carries.
func (h *ImageHandle) GetColorProfileType() ColorProfileType {
	defer runtime.KeepAlive(h)
	return ColorProfileType(C.heif_image_handle_get_color_profile_type(h.handle))
}

// GetRawColorProfile returns the raw ICC profile bytes stored with the
// image, or nil when none is present.
func (h *ImageHandle) GetRawColorProfile() ([]byte, error) {
	defer runtime.KeepAlive(h)
	size := C.heif_image_handle_get_raw_color_profile_size(h.handle)
	if size == 0 {
		return nil, nil
	}
	data := make([]byte, int(size))
	if err := h.ctx.convertError(C.heif_image_handle_get_raw_color_profile(h.handle, bytesPtr(data))); err != nil {
		return nil, err
	}
	return data, nil
}

// GetNclxColorProfile returns the nclx profile stored with the image. The
// error carries ErrorCodeColorProfileDoesNotExist when none is present.
func (h *ImageHandle) GetNclxColorProfile() (*NclxColorProfile, error) {
	defer runtime.KeepAlive(h)
	var nclx *C.struct_heif_color_profile_nclx
	if err := convertError(C.heif_image_handle_get_nclx_color_profile(h.handle, &nclx)); err != nil {
		return nil, err
	}
	defer C.heif_nclx_color_profile_free(nclx)
	return nclxFromNative(nclx), nil
}

// GetColorProfileType returns which kind of color profile the decoded
// image carries.
func (img *Image) GetColorProfileType() ColorProfileType {
	defer runtime.KeepAlive(img)
	return ColorProfileType(C.heif_image_get_color_profile_type(img.image))
}

// GetRawColorProfile returns the raw ICC profile bytes attached to the
// decoded image, or nil when none is present.
func (img *Image) GetRawColorProfile() ([]byte, error) {
	defer runtime.KeepAlive(img)
	size := C.heif_image_get_raw_color_profile_size(img.image)
	if size == 0 {
		return nil, nil
	}
	data := make([]byte, int(size))
	if err := convertError(C.heif_image_get_raw_color_profile(img.image, bytesPtr(data))); err != nil {
		return nil, err
	}
	return data, nil
}

// GetNclxColorProfile returns the nclx profile attached to the decoded
// image.
func (img *Image) GetNclxColorProfile() (*NclxColorProfile, error) {
	defer runtime.KeepAlive(img)
	var nclx *C.struct_heif_color_profile_nclx
	if err := convertError(C.heif_image_get_nclx_color_profile(img.image, &nclx)); err != nil {
		return nil, err
	}
	defer C.heif_nclx_color_profile_free(nclx)
	return nclxFromNative(nclx), nil
}

// SetRawColorProfile attaches a raw ICC profile to the image.
// profileType is the fourcc of the profile box, "prof" or "rICC".
func (img *Image) SetRawColorProfile(profileType string, data []byte) error {
	defer runtime.KeepAlive(img)
	ctype := C.CString(profileType)
	defer C.free(unsafe.Pointer(ctype))
	err := convertError(C.heif_image_set_raw_color_profile(img.image, ctype,
		bytesPtr(data), C.size_t(len(data))))
	runtime.KeepAlive(data)
	return err
}

// SetNclxColorProfile attaches an nclx color profile to the image.
func (img *Image) SetNclxColorProfile(profile *NclxColorProfile) error {
	defer runtime.KeepAlive(img)
	nclx := C.heif_nclx_color_profile_alloc()
	if nclx == nil {
		return &Error{Code: ErrorCodeMemoryAllocation, Message: "heif: cannot allocate nclx profile"}
	}
	defer C.heif_nclx_color_profile_free(nclx)
	profile.fillNative(nclx)
	return convertError(C.heif_image_set_nclx_color_profile(img.image, nclx))
}
