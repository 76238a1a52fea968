package vtcore

import "crypto/sha256"

// Image is one uploaded RGBA bitmap. Images are addressed by id the same
// way hyperlinks are: cells and placements carry small integer references,
// never pointers, so bulk cell operations stay cheap and an evicted image
// leaves only dangling ids behind.
type Image struct {
	ID     uint32
	Width  uint32
	Height uint32
	Data   []byte // RGBA, 4 bytes per pixel

	hash   [32]byte
	access uint64 // registry clock at last touch, drives eviction order
}

// ImagePlacement anchors one displayed instance of an Image to the grid.
type ImagePlacement struct {
	ID      uint32
	ImageID uint32

	// Anchor cell and covered extent, in grid coordinates.
	Row, Col   int
	Rows, Cols int

	// Source bitmap size in pixels, for renderers that scale.
	SrcW, SrcH uint32

	// Z-index for layering (negative draws behind text).
	ZIndex int32
}

// CellImage is the per-cell fragment reference: which placement covers the
// cell, and the normalized texture window a renderer samples for it.
type CellImage struct {
	PlacementID uint32
	ImageID     uint32

	U0, V0 float32 // top-left corner, 0.0-1.0
	U1, V1 float32 // bottom-right corner

	ZIndex int32
}

// defaultImageBudget bounds image pixel memory per screen until the owner
// overrides it.
const defaultImageBudget = 320 << 20

// ImageRegistry owns a screen's uploaded images and their placements,
// following the same interning discipline as HyperlinkRegistry: identical
// pixel data resolves to one id, lookups go through integer ids, and
// entries are evicted once the memory budget is exceeded and no placement
// keeps them alive. Like every other Screen-owned registry it relies on
// the owning Terminal's lock rather than carrying its own.
type ImageRegistry struct {
	images     map[uint32]*Image
	byHash     map[[32]byte]uint32
	placements map[uint32]*ImagePlacement

	nextImage     uint32
	nextPlacement uint32
	clock         uint64

	budget int64
	used   int64
}

// NewImageRegistry returns an empty registry with the default memory budget.
func NewImageRegistry() *ImageRegistry {
	return &ImageRegistry{
		images:     make(map[uint32]*Image),
		byHash:     make(map[[32]byte]uint32),
		placements: make(map[uint32]*ImagePlacement),
		budget:     defaultImageBudget,
	}
}

// SetBudget rebounds the registry's pixel memory budget, evicting
// immediately if the new budget is already exceeded.
func (r *ImageRegistry) SetBudget(bytes int64) {
	r.budget = bytes
	r.evict()
}

func (r *ImageRegistry) touch(img *Image) {
	r.clock++
	img.access = r.clock
}

// Intern stores RGBA pixel data and returns its id, reusing the existing
// entry when identical data was uploaded before.
func (r *ImageRegistry) Intern(width, height uint32, data []byte) uint32 {
	hash := sha256.Sum256(data)
	if id, ok := r.byHash[hash]; ok {
		if img, ok := r.images[id]; ok {
			r.touch(img)
			return id
		}
	}

	r.nextImage++
	r.install(&Image{ID: r.nextImage, Width: width, Height: height, Data: data, hash: hash})
	return r.nextImage
}

// Put stores pixel data under a caller-chosen id (Kitty "i=" uploads),
// replacing any previous image registered there.
func (r *ImageRegistry) Put(id, width, height uint32, data []byte) {
	if old, ok := r.images[id]; ok {
		r.remove(old)
	}
	if id >= r.nextImage {
		r.nextImage = id
	}
	r.install(&Image{ID: id, Width: width, Height: height, Data: data, hash: sha256.Sum256(data)})
}

func (r *ImageRegistry) install(img *Image) {
	r.touch(img)
	r.images[img.ID] = img
	r.byHash[img.hash] = img.ID
	r.used += int64(len(img.Data))
	r.evict()
}

func (r *ImageRegistry) remove(img *Image) {
	delete(r.images, img.ID)
	delete(r.byHash, img.hash)
	r.used -= int64(len(img.Data))
}

// Image returns the image registered under id, or nil.
func (r *ImageRegistry) Image(id uint32) *Image {
	img, ok := r.images[id]
	if !ok {
		return nil
	}
	r.touch(img)
	return img
}

// Place registers a placement, assigning and returning its id.
func (r *ImageRegistry) Place(p *ImagePlacement) uint32 {
	r.nextPlacement++
	p.ID = r.nextPlacement
	r.placements[p.ID] = p
	return p.ID
}

// Placement returns the placement registered under id, or nil.
func (r *ImageRegistry) Placement(id uint32) *ImagePlacement {
	return r.placements[id]
}

// Placements returns every live placement.
func (r *ImageRegistry) Placements() []*ImagePlacement {
	out := make([]*ImagePlacement, 0, len(r.placements))
	for _, p := range r.placements {
		out = append(out, p)
	}
	return out
}

// DropPlacements removes every placement match reports true for. When
// withData is set, the images those placements referenced are deleted too.
func (r *ImageRegistry) DropPlacements(withData bool, match func(*ImagePlacement) bool) {
	for id, p := range r.placements {
		if !match(p) {
			continue
		}
		delete(r.placements, id)
		if withData {
			if img, ok := r.images[p.ImageID]; ok {
				r.remove(img)
			}
		}
	}
}

// DeleteImage removes an image and every placement showing it.
func (r *ImageRegistry) DeleteImage(id uint32) {
	if img, ok := r.images[id]; ok {
		r.remove(img)
	}
	r.DropPlacements(false, func(p *ImagePlacement) bool { return p.ImageID == id })
}

// Clear discards every image and placement.
func (r *ImageRegistry) Clear() {
	r.images = make(map[uint32]*Image)
	r.byHash = make(map[[32]byte]uint32)
	r.placements = make(map[uint32]*ImagePlacement)
	r.used = 0
}

// ImageCount returns the number of distinct stored images.
func (r *ImageRegistry) ImageCount() int { return len(r.images) }

// PlacementCount returns the number of live placements.
func (r *ImageRegistry) PlacementCount() int { return len(r.placements) }

// UsedMemory returns the pixel bytes currently held.
func (r *ImageRegistry) UsedMemory() int64 { return r.used }

// evict drops least-recently-touched images until the budget is met,
// never removing an image a live placement still shows.
func (r *ImageRegistry) evict() {
	if r.used <= r.budget {
		return
	}
	placed := make(map[uint32]bool, len(r.placements))
	for _, p := range r.placements {
		placed[p.ImageID] = true
	}
	for r.used > r.budget {
		var victim *Image
		for _, img := range r.images {
			if placed[img.ID] {
				continue
			}
			if victim == nil || img.access < victim.access {
				victim = img
			}
		}
		if victim == nil {
			return
		}
		r.remove(victim)
	}
}
