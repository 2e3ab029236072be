package heif

/*
#include "goheif.h"
*/
import "C"
import (
	"runtime"
	"unsafe"
)

// Region annotations attach geometry (points, rectangles, ellipses,
// polygons) to an image, e.g. to mark detected faces. The whole API
// family requires libheif 1.16; on older runtimes every entry point
// returns an UnsupportedVersionError.

// RegionType identifies the geometry of a Region.
type RegionType int

const (
	RegionTypePoint     RegionType = C.heif_region_type_point
	RegionTypeRectangle RegionType = C.heif_region_type_rectangle
	RegionTypeEllipse   RegionType = C.heif_region_type_ellipse
	RegionTypePolygon   RegionType = C.heif_region_type_polygon
	RegionTypePolyline  RegionType = C.heif_region_type_polyline
)

// Point is one vertex of a polygon or polyline region, in the region
// item's reference coordinate space.
type Point struct {
	X, Y int32
}

// RegionItem groups one or more regions sharing a reference coordinate
// space.
type RegionItem struct {
	item *C.struct_heif_region_item
}

func newRegionItem(item *C.struct_heif_region_item) *RegionItem {
	r := &RegionItem{item: item}
	runtime.SetFinalizer(r, (*RegionItem).Close)
	return r
}

// Close releases the native region item. Safe to call more than once.
func (r *RegionItem) Close() {
	if r.item != nil {
		C.heif_region_item_release(r.item)
		r.item = nil
	}
	runtime.SetFinalizer(r, nil)
}

// GetID returns the item id of the region item.
func (r *RegionItem) GetID() ItemID {
	defer runtime.KeepAlive(r)
	return ItemID(C.heif_region_item_get_id(r.item))
}

// GetReferenceSize returns the dimensions of the coordinate space the
// item's regions are expressed in.
func (r *RegionItem) GetReferenceSize() (width, height uint32) {
	defer runtime.KeepAlive(r)
	var w, h C.uint32_t
	C.heif_region_item_get_reference_size(r.item, &w, &h)
	return uint32(w), uint32(h)
}

// GetNumberOfRegionItems returns how many region items are attached to
// the image.
func (h *ImageHandle) GetNumberOfRegionItems() (int, error) {
	defer runtime.KeepAlive(h)
	if err := requireVersion("region annotations", 1, 16); err != nil {
		return 0, err
	}
	return int(C.heif_image_handle_get_number_of_region_items(h.handle)), nil
}

// GetListOfRegionItemIDs returns the item ids of the region items
// attached to the image.
func (h *ImageHandle) GetListOfRegionItemIDs() ([]ItemID, error) {
	defer runtime.KeepAlive(h)
	if err := requireVersion("region annotations", 1, 16); err != nil {
		return nil, err
	}
	n := int(C.heif_image_handle_get_number_of_region_items(h.handle))
	if n == 0 {
		return nil, nil
	}
	ids := make([]ItemID, n)
	n = int(C.heif_image_handle_get_list_of_region_item_ids(
		h.handle, (*C.heif_item_id)(unsafe.Pointer(&ids[0])), C.int(n)))
	return ids[:n], nil
}

// GetRegionItem returns the region item with the given item id.
func (c *Context) GetRegionItem(id ItemID) (*RegionItem, error) {
	defer runtime.KeepAlive(c)
	if err := requireVersion("region annotations", 1, 16); err != nil {
		return nil, err
	}
	var item *C.struct_heif_region_item
	if err := c.convertError(C.heif_context_get_region_item(c.ctx, C.heif_item_id(id), &item)); err != nil {
		return nil, err
	}
	return newRegionItem(item), nil
}

// AddRegionItem attaches a new, empty region item to the image with the
// given reference coordinate space.
func (h *ImageHandle) AddRegionItem(referenceWidth, referenceHeight uint32) (*RegionItem, error) {
	defer runtime.KeepAlive(h)
	if err := requireVersion("region annotations", 1, 16); err != nil {
		return nil, err
	}
	var item *C.struct_heif_region_item
	cerr := C.heif_image_handle_add_region_item(h.handle,
		C.uint32_t(referenceWidth), C.uint32_t(referenceHeight), &item)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newRegionItem(item), nil
}

// Region is one geometry inside a RegionItem.
type Region struct {
	region *C.struct_heif_region
}

func newRegion(region *C.struct_heif_region) *Region {
	r := &Region{region: region}
	runtime.SetFinalizer(r, (*Region).Close)
	return r
}

// Close releases the native region. Safe to call more than once.
func (r *Region) Close() {
	if r.region != nil {
		C.heif_region_release(r.region)
		r.region = nil
	}
	runtime.SetFinalizer(r, nil)
}

// GetType returns the region's geometry type.
func (r *Region) GetType() RegionType {
	defer runtime.KeepAlive(r)
	return RegionType(C.heif_region_get_type(r.region))
}

// GetRegions returns the regions stored in the item.
func (r *RegionItem) GetRegions() []*Region {
	defer runtime.KeepAlive(r)
	n := int(C.heif_region_item_get_number_of_regions(r.item))
	if n == 0 {
		return nil
	}
	regions := make([]*C.struct_heif_region, n)
	n = int(C.heif_region_item_get_list_of_regions(r.item, &regions[0], C.int(n)))
	out := make([]*Region, 0, n)
	for _, reg := range regions[:n] {
		out = append(out, newRegion(reg))
	}
	return out
}

// GetPoint returns the coordinates of a point region.
func (r *Region) GetPoint() (Point, error) {
	defer runtime.KeepAlive(r)
	var x, y C.int32_t
	if err := convertError(C.heif_region_get_point(r.region, &x, &y)); err != nil {
		return Point{}, err
	}
	return Point{X: int32(x), Y: int32(y)}, nil
}

// GetRectangle returns the position and size of a rectangle region.
func (r *Region) GetRectangle() (x, y int32, width, height uint32, err error) {
	defer runtime.KeepAlive(r)
	var cx, cy C.int32_t
	var cw, ch C.uint32_t
	if err := convertError(C.heif_region_get_rectangle(r.region, &cx, &cy, &cw, &ch)); err != nil {
		return 0, 0, 0, 0, err
	}
	return int32(cx), int32(cy), uint32(cw), uint32(ch), nil
}

// GetEllipse returns the center and radii of an ellipse region.
func (r *Region) GetEllipse() (x, y int32, radiusX, radiusY uint32, err error) {
	defer runtime.KeepAlive(r)
	var cx, cy C.int32_t
	var crx, cry C.uint32_t
	if err := convertError(C.heif_region_get_ellipse(r.region, &cx, &cy, &crx, &cry)); err != nil {
		return 0, 0, 0, 0, err
	}
	return int32(cx), int32(cy), uint32(crx), uint32(cry), nil
}

// GetPolygonPoints returns the vertices of a polygon region.
func (r *Region) GetPolygonPoints() ([]Point, error) {
	defer runtime.KeepAlive(r)
	n := int(C.heif_region_get_polygon_num_points(r.region))
	if n == 0 {
		return nil, nil
	}
	coords := make([]C.int32_t, 2*n)
	if err := convertError(C.heif_region_get_polygon_points(r.region, &coords[0])); err != nil {
		return nil, err
	}
	return pointsFromCoords(coords), nil
}

// GetPolylinePoints returns the vertices of a polyline region.
func (r *Region) GetPolylinePoints() ([]Point, error) {
	defer runtime.KeepAlive(r)
	n := int(C.heif_region_get_polyline_num_points(r.region))
	if n == 0 {
		return nil, nil
	}
	coords := make([]C.int32_t, 2*n)
	if err := convertError(C.heif_region_get_polyline_points(r.region, &coords[0])); err != nil {
		return nil, err
	}
	return pointsFromCoords(coords), nil
}

func pointsFromCoords(coords []C.int32_t) []Point {
	points := make([]Point, len(coords)/2)
	for i := range points {
		points[i] = Point{X: int32(coords[2*i]), Y: int32(coords[2*i+1])}
	}
	return points
}

func coordsFromPoints(points []Point) []C.int32_t {
	coords := make([]C.int32_t, 2*len(points))
	for i, p := range points {
		coords[2*i] = C.int32_t(p.X)
		coords[2*i+1] = C.int32_t(p.Y)
	}
	return coords
}

// AddPoint adds a point region to the item.
func (r *RegionItem) AddPoint(x, y int32) (*Region, error) {
	defer runtime.KeepAlive(r)
	var region *C.struct_heif_region
	cerr := C.heif_region_item_add_region_point(r.item, C.int32_t(x), C.int32_t(y), &region)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newRegion(region), nil
}

// AddRectangle adds a rectangle region to the item.
func (r *RegionItem) AddRectangle(x, y int32, width, height uint32) (*Region, error) {
	defer runtime.KeepAlive(r)
	var region *C.struct_heif_region
	cerr := C.heif_region_item_add_region_rectangle(r.item,
		C.int32_t(x), C.int32_t(y), C.uint32_t(width), C.uint32_t(height), &region)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newRegion(region), nil
}

// AddEllipse adds an ellipse region to the item.
func (r *RegionItem) AddEllipse(x, y int32, radiusX, radiusY uint32) (*Region, error) {
	defer runtime.KeepAlive(r)
	var region *C.struct_heif_region
	cerr := C.heif_region_item_add_region_ellipse(r.item,
		C.int32_t(x), C.int32_t(y), C.uint32_t(radiusX), C.uint32_t(radiusY), &region)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newRegion(region), nil
}

// AddPolygon adds a closed polygon region to the item.
func (r *RegionItem) AddPolygon(points []Point) (*Region, error) {
	defer runtime.KeepAlive(r)
	if len(points) == 0 {
		return nil, &Error{
			Code:    ErrorCodeUsageError,
			Subcode: SuberrorNullPointerArgument,
			Message: "heif: polygon needs at least one point",
		}
	}
	coords := coordsFromPoints(points)
	var region *C.struct_heif_region
	cerr := C.heif_region_item_add_region_polygon(r.item, &coords[0], C.int(len(points)), &region)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newRegion(region), nil
}

// AddPolyline adds an open polyline region to the item.
func (r *RegionItem) AddPolyline(points []Point) (*Region, error) {
	defer runtime.KeepAlive(r)
	if len(points) == 0 {
		return nil, &Error{
			Code:    ErrorCodeUsageError,
			Subcode: SuberrorNullPointerArgument,
			Message: "heif: polyline needs at least one point",
		}
	}
	coords := coordsFromPoints(points)
	var region *C.struct_heif_region
	cerr := C.heif_region_item_add_region_polyline(r.item, &coords[0], C.int(len(points)), &region)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newRegion(region), nil
}
