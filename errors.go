package heif

// #include "goheif.h"
import "C"
import "fmt"

// ErrorCode represents the primary error category reported by libheif.
//
// Every failing library call produces an ErrorCode together with a
// SuberrorCode and a human-readable message; the three are surfaced as an
// *Error.
type ErrorCode int

const (
	ErrorCodeOK                       ErrorCode = C.heif_error_Ok
	ErrorCodeInputDoesNotExist        ErrorCode = C.heif_error_Input_does_not_exist
	ErrorCodeInvalidInput             ErrorCode = C.heif_error_Invalid_input
	ErrorCodeUnsupportedFiletype      ErrorCode = C.heif_error_Unsupported_filetype
	ErrorCodeUnsupportedFeature       ErrorCode = C.heif_error_Unsupported_feature
	ErrorCodeUsageError               ErrorCode = C.heif_error_Usage_error
	ErrorCodeMemoryAllocation         ErrorCode = C.heif_error_Memory_allocation_error
	ErrorCodeDecoderPlugin            ErrorCode = C.heif_error_Decoder_plugin_error
	ErrorCodeEncoderPlugin            ErrorCode = C.heif_error_Encoder_plugin_error
	ErrorCodeEncoding                 ErrorCode = C.heif_error_Encoding_error
	ErrorCodeColorProfileDoesNotExist ErrorCode = C.heif_error_Color_profile_does_not_exist
	ErrorCodePluginLoading            ErrorCode = C.heif_error_Plugin_loading_error
)

// SuberrorCode refines an ErrorCode with the specific condition libheif
// detected, e.g. a missing mandatory box inside an invalid input.
type SuberrorCode int

const (
	SuberrorUnspecified SuberrorCode = C.heif_suberror_Unspecified

	// Invalid_input
	SuberrorEndOfData                             SuberrorCode = C.heif_suberror_End_of_data
	SuberrorInvalidBoxSize                        SuberrorCode = C.heif_suberror_Invalid_box_size
	SuberrorNoFtypBox                             SuberrorCode = C.heif_suberror_No_ftyp_box
	SuberrorNoIdatBox                             SuberrorCode = C.heif_suberror_No_idat_box
	SuberrorNoMetaBox                             SuberrorCode = C.heif_suberror_No_meta_box
	SuberrorNoHdlrBox                             SuberrorCode = C.heif_suberror_No_hdlr_box
	SuberrorNoHvcCBox                             SuberrorCode = C.heif_suberror_No_hvcC_box
	SuberrorNoPitmBox                             SuberrorCode = C.heif_suberror_No_pitm_box
	SuberrorNoIpcoBox                             SuberrorCode = C.heif_suberror_No_ipco_box
	SuberrorNoIpmaBox                             SuberrorCode = C.heif_suberror_No_ipma_box
	SuberrorNoIlocBox                             SuberrorCode = C.heif_suberror_No_iloc_box
	SuberrorNoIinfBox                             SuberrorCode = C.heif_suberror_No_iinf_box
	SuberrorNoIprpBox                             SuberrorCode = C.heif_suberror_No_iprp_box
	SuberrorNoIrefBox                             SuberrorCode = C.heif_suberror_No_iref_box
	SuberrorNoPictHandler                         SuberrorCode = C.heif_suberror_No_pict_handler
	SuberrorIpmaBoxReferencesNonexistingProperty  SuberrorCode = C.heif_suberror_Ipma_box_references_nonexisting_property
	SuberrorNoPropertiesAssignedToItem            SuberrorCode = C.heif_suberror_No_properties_assigned_to_item
	SuberrorNoItemData                            SuberrorCode = C.heif_suberror_No_item_data
	SuberrorInvalidGridData                       SuberrorCode = C.heif_suberror_Invalid_grid_data
	SuberrorMissingGridImages                     SuberrorCode = C.heif_suberror_Missing_grid_images
	SuberrorInvalidCleanAperture                  SuberrorCode = C.heif_suberror_Invalid_clean_aperture
	SuberrorInvalidOverlayData                    SuberrorCode = C.heif_suberror_Invalid_overlay_data
	SuberrorOverlayImageOutsideOfCanvas           SuberrorCode = C.heif_suberror_Overlay_image_outside_of_canvas
	SuberrorAuxiliaryImageTypeUnspecified         SuberrorCode = C.heif_suberror_Auxiliary_image_type_unspecified
	SuberrorNoOrInvalidPrimaryItem                SuberrorCode = C.heif_suberror_No_or_invalid_primary_item
	SuberrorNoInfeBox                             SuberrorCode = C.heif_suberror_No_infe_box
	SuberrorUnknownColorProfileType               SuberrorCode = C.heif_suberror_Unknown_color_profile_type
	SuberrorWrongTileImageChromaFormat            SuberrorCode = C.heif_suberror_Wrong_tile_image_chroma_format
	SuberrorInvalidFractionalNumber               SuberrorCode = C.heif_suberror_Invalid_fractional_number
	SuberrorInvalidImageSize                      SuberrorCode = C.heif_suberror_Invalid_image_size
	SuberrorInvalidPixiBox                        SuberrorCode = C.heif_suberror_Invalid_pixi_box
	SuberrorNoAV1CBox                             SuberrorCode = C.heif_suberror_No_av1C_box
	SuberrorWrongTileImagePixelDepth              SuberrorCode = C.heif_suberror_Wrong_tile_image_pixel_depth
	SuberrorUnknownNCLXColorPrimaries             SuberrorCode = C.heif_suberror_Unknown_NCLX_color_primaries
	SuberrorUnknownNCLXTransferCharacteristics    SuberrorCode = C.heif_suberror_Unknown_NCLX_transfer_characteristics
	SuberrorUnknownNCLXMatrixCoefficients         SuberrorCode = C.heif_suberror_Unknown_NCLX_matrix_coefficients
	SuberrorInvalidRegionData                     SuberrorCode = C.heif_suberror_Invalid_region_data

	// Memory_allocation_error
	SuberrorSecurityLimitExceeded SuberrorCode = C.heif_suberror_Security_limit_exceeded

	// Usage_error
	SuberrorNonexistingItemReferenced         SuberrorCode = C.heif_suberror_Nonexisting_item_referenced
	SuberrorNullPointerArgument               SuberrorCode = C.heif_suberror_Null_pointer_argument
	SuberrorNonexistingImageChannelReferenced SuberrorCode = C.heif_suberror_Nonexisting_image_channel_referenced
	SuberrorUnsupportedPluginVersion          SuberrorCode = C.heif_suberror_Unsupported_plugin_version
	SuberrorUnsupportedWriterVersion          SuberrorCode = C.heif_suberror_Unsupported_writer_version
	SuberrorUnsupportedParameter              SuberrorCode = C.heif_suberror_Unsupported_parameter
	SuberrorInvalidParameterValue             SuberrorCode = C.heif_suberror_Invalid_parameter_value
	SuberrorInvalidProperty                   SuberrorCode = C.heif_suberror_Invalid_property
	SuberrorItemReferenceCycle                SuberrorCode = C.heif_suberror_Item_reference_cycle

	// Unsupported_feature
	SuberrorUnsupportedCodec                    SuberrorCode = C.heif_suberror_Unsupported_codec
	SuberrorUnsupportedImageType                SuberrorCode = C.heif_suberror_Unsupported_image_type
	SuberrorUnsupportedDataVersion              SuberrorCode = C.heif_suberror_Unsupported_data_version
	SuberrorUnsupportedColorConversion          SuberrorCode = C.heif_suberror_Unsupported_color_conversion
	SuberrorUnsupportedItemConstructionMethod   SuberrorCode = C.heif_suberror_Unsupported_item_construction_method
	SuberrorUnsupportedHeaderCompressionMethod  SuberrorCode = C.heif_suberror_Unsupported_header_compression_method

	// Encoder_plugin_error
	SuberrorUnsupportedBitDepth SuberrorCode = C.heif_suberror_Unsupported_bit_depth

	// Encoding_error
	SuberrorCannotWriteOutputData SuberrorCode = C.heif_suberror_Cannot_write_output_data
	SuberrorEncoderInitialization SuberrorCode = C.heif_suberror_Encoder_initialization
	SuberrorEncoderEncoding       SuberrorCode = C.heif_suberror_Encoder_encoding
	SuberrorEncoderCleanup        SuberrorCode = C.heif_suberror_Encoder_cleanup
	SuberrorTooManyRegions        SuberrorCode = C.heif_suberror_Too_many_regions
)

// Error is a failure reported by the native library. It carries the
// library's error category, the specific subcode and the message text the
// library produced.
type Error struct {
	Code    ErrorCode
	Subcode SuberrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// convertError translates a native heif_error into a Go error, mapping the
// OK code to nil.
func convertError(cerr C.struct_heif_error) error {
	if cerr.code == C.heif_error_Ok {
		return nil
	}
	return &Error{
		Code:    ErrorCode(cerr.code),
		Subcode: SuberrorCode(cerr.subcode),
		Message: C.GoString(cerr.message),
	}
}

// UnsupportedVersionError reports that an API family is missing from the
// libheif runtime the process is linked against. Contrast this with option
// fields, which degrade silently when the runtime does not know them.
type UnsupportedVersionError struct {
	Feature string
	Minimum string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("heif: %s requires libheif %s or newer (linked: %s)",
		e.Feature, e.Minimum, Version())
}

// requireVersion returns an UnsupportedVersionError when the runtime
// library predates major.minor.
func requireVersion(feature string, major, minor int) error {
	if haveVersion(major, minor) {
		return nil
	}
	return &UnsupportedVersionError{
		Feature: feature,
		Minimum: fmt.Sprintf("%d.%d", major, minor),
	}
}
