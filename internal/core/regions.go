// Crop rectangle selection
package core

import (
	"fmt"
	"image"
	"sync"
)

// Selection is a rectangular region of interest in transformed-image
// coordinates.
type Selection struct {
	ID     string
	Bounds image.Rectangle
}

// RegionManager tracks the single active crop rectangle
type RegionManager struct {
	mu     sync.RWMutex
	active *Selection
	nextID int
}

func NewRegionManager() *RegionManager {
	return &RegionManager{nextID: 1}
}

// CreateRectangleSelection makes rect (canonicalized) the active crop and
// returns its id. An empty rectangle clears the selection.
func (rm *RegionManager) CreateRectangleSelection(rect image.Rectangle) string {
	rect = rect.Canon()

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rect.Empty() {
		rm.active = nil
		return ""
	}

	id := fmt.Sprintf("rect_%d", rm.nextID)
	rm.nextID++
	rm.active = &Selection{ID: id, Bounds: rect}
	return id
}

// GetActiveSelection returns a copy of the active selection or nil
func (rm *RegionManager) GetActiveSelection() *Selection {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	if rm.active == nil {
		return nil
	}
	sel := *rm.active
	return &sel
}

func (rm *RegionManager) HasActiveSelection() bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.active != nil
}

func (rm *RegionManager) ClearAll() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.active = nil
}

// CropFor returns the active selection clipped to bounds. Without a
// selection, or when it lies entirely outside, the centred square of the
// given side is used instead (see CenteredRegion).
func (rm *RegionManager) CropFor(bounds image.Rectangle, side int) image.Rectangle {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	if rm.active != nil {
		if r := rm.active.Bounds.Intersect(bounds); !r.Empty() {
			return r
		}
	}
	return CenteredRegion(bounds, side)
}

// CenteredRegion returns a side x side square centred in bounds and clipped
// to it. A side of zero or less selects all of bounds.
func CenteredRegion(bounds image.Rectangle, side int) image.Rectangle {
	if side <= 0 {
		return bounds
	}
	w := min(side, bounds.Dx())
	h := min(side, bounds.Dy())
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
