package bitmap

import (
	"fmt"
	"unsafe"

	"github.com/rook-computer/bitmapfb/internal/rect"
)

func checkPair(op string, src, dst *Surface) error {
	if src == nil || dst == nil {
		logger().Errorf("bitmap", "%s: passed source or destination surface was nil", op)
		return ErrNilSurface
	}
	if src.mem == nil || dst.mem == nil {
		logger().Errorf("bitmap", "%s: source or destination surface has no storage", op)
		return ErrNoStorage
	}
	return nil
}

// after reports whether &a[i] lies at a higher address than &b[j]. Distinct
// allocations never overlap, so this only matters when a and b alias.
func after(a []byte, i int, b []byte, j int) bool {
	return uintptr(unsafe.Pointer(&a[i])) > uintptr(unsafe.Pointer(&b[j]))
}

// Blit copies a width x height block from src at (srcX, srcY) to dst at
// (dstX, dstY). src and dst may be the same surface, or surfaces aliasing the
// same memory; overlapping copies are handled.
//
// Coordinates may be negative or run past either surface. The block is
// clipped on every edge of both surfaces, keeping source and destination
// pixels in correspondence. When nothing is left to copy Blit returns
// (false, nil): that is a no-op, not a failure. Rows are addressed with each
// surface's own width, so surfaces of different widths blit correctly.
func Blit(src *Surface, srcX, srcY int, dst *Surface, dstX, dstY, width, height int) (bool, error) {
	if err := checkPair("blit", src, dst); err != nil {
		return false, err
	}
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("%w: blit size %dx%d", ErrInvalidArgument, width, height)
	}

	if srcX < 0 {
		dstX -= srcX
		width += srcX
		srcX = 0
	}
	if srcY < 0 {
		dstY -= srcY
		height += srcY
		srcY = 0
	}
	if dstX < 0 {
		srcX -= dstX
		width += dstX
		dstX = 0
	}
	if dstY < 0 {
		srcY -= dstY
		height += dstY
		dstY = 0
	}
	width = min(width, src.width-srcX, dst.width-dstX)
	height = min(height, src.height-srcY, dst.height-dstY)

	if width <= 0 || height <= 0 {
		logger().Infof("bitmap", "blit: no part of the block is on both surfaces; no copy performed")
		return false, nil
	}

	readOff := src.addr(srcX, srcY)
	writeOff := dst.addr(dstX, dstY)
	readStride, writeStride := src.width, dst.width

	// A shift towards higher addresses within one buffer copies the bottom
	// row first so source rows are read before they are overwritten.
	if after(dst.mem, writeOff, src.mem, readOff) {
		readOff += readStride * (height - 1)
		writeOff += writeStride * (height - 1)
		readStride, writeStride = -readStride, -writeStride
	}

	for row := 0; row < height; row++ {
		copy(dst.mem[writeOff:writeOff+width], src.mem[readOff:readOff+width])
		readOff += readStride
		writeOff += writeStride
	}
	return true, nil
}

// BlitRect blits the inclusive rectangle r of src to (dstX, dstY) in dst.
func BlitRect(src *Surface, r rect.Rect, dst *Surface, dstX, dstY int) (bool, error) {
	return Blit(src, r.MinX, r.MinY, dst, dstX, dstY, r.Width(), r.Height())
}

// Tile covers all of dst with copies of the width x height tile at
// (srcX, srcY) in src. The tile must lie entirely within src; a tile larger
// than dst is cut down to dst's size.
//
// The first band of tile rows is built across the full width of dst, then
// that band is copied down the rest of dst. After the first band only dst is
// read, so a source in slow or distant memory is touched height times rather
// than once per destination row.
func Tile(src *Surface, srcX, srcY int, dst *Surface, width, height int) error {
	if err := checkPair("tile", src, dst); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: tile size %dx%d", ErrInvalidArgument, width, height)
	}
	if srcX < 0 || srcX+width > src.width || srcY < 0 || srcY+height > src.height {
		logger().Infof("bitmap", "tile: (%d, %d) %dx%d is not within the source; no tiling performed", srcX, srcY, width, height)
		return fmt.Errorf("%w: (%d, %d) %dx%d in %dx%d", ErrTileOutOfBounds, srcX, srcY, width, height, src.width, src.height)
	}

	width = min(width, dst.width)
	height = min(height, dst.height)

	pix := dst.Pix()
	stride := dst.width

	for i := 0; i < height; i++ {
		row := pix[i*stride : (i+1)*stride]
		read := src.addr(srcX, srcY+i)
		copy(row[:width], src.mem[read:read+width])
		for x := width; x < stride; x += width {
			copy(row[x:], row[:width])
		}
	}

	band := pix[:stride*height]
	for off := len(band); off < len(pix); off += len(band) {
		copy(pix[off:], band)
	}
	return nil
}
