// Package heif provides Go bindings to libheif, the HEIF/HEIC/AVIF image
// library.
//
// The package wraps libheif's context, image, image-handle, encoder,
// decoder, region-annotation and color-profile APIs as Go types. All heavy
// lifting (entropy coding, color conversion, ISOBMFF box parsing) happens
// inside the native library; this package handles marshaling, callback
// plumbing and lifetime management across the C boundary.
//
// The binding compiles against its own declarations of the libheif ABI
// (see the c directory) and links with -lheif. Features that depend on the
// version of the library present at run time are either degraded silently
// (option-struct fields the runtime does not know, see DecodeOptions) or
// reported with UnsupportedVersionError (whole API families such as region
// annotations), matching libheif's own compatibility rules.
package heif

/*
#cgo CFLAGS: -I${SRCDIR}/c
#cgo LDFLAGS: -lheif
#include "goheif.h"
*/
import "C"
import "unsafe"

// Version returns the version string of the linked libheif runtime, e.g.
// "1.17.6".
func Version() string {
	return C.GoString(C.heif_get_version())
}

// VersionNumber returns the runtime library version encoded as
// 0xHHMMLL00 (major, minor, maintenance).
func VersionNumber() uint32 {
	return uint32(C.heif_get_version_number())
}

// LibraryVersion contains the decomposed version of the linked libheif
// runtime.
type LibraryVersion struct {
	Major, Minor, Maintenance int
}

// GetLibraryVersion queries the runtime library for its version. Note that
// this may differ from the version the binding was compiled against; the
// binding probes this value before using any API that is not present in
// every supported release.
func GetLibraryVersion() LibraryVersion {
	return LibraryVersion{
		Major:       int(C.heif_get_version_number_major()),
		Minor:       int(C.heif_get_version_number_minor()),
		Maintenance: int(C.heif_get_version_number_maintenance()),
	}
}

// haveVersion reports whether the runtime library is at least
// major.minor.
func haveVersion(major, minor int) bool {
	v := GetLibraryVersion()
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// FiletypeResult is the outcome of probing a byte prefix for a HEIF
// signature.
type FiletypeResult int

const (
	FiletypeNo             FiletypeResult = C.heif_filetype_no
	FiletypeYesSupported   FiletypeResult = C.heif_filetype_yes_supported
	FiletypeYesUnsupported FiletypeResult = C.heif_filetype_yes_unsupported
	FiletypeMaybe          FiletypeResult = C.heif_filetype_maybe
)

// CheckFiletype inspects the beginning of a file (at least the first 12
// bytes should be given) and reports whether it looks like a HEIF file and
// whether the compression inside is supported.
func CheckFiletype(data []byte) FiletypeResult {
	if len(data) == 0 {
		return FiletypeNo
	}
	return FiletypeResult(C.heif_check_filetype(
		(*C.uint8_t)(unsafe.Pointer(&data[0])), C.int(len(data))))
}
