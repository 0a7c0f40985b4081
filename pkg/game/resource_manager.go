package game

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/smokefx/internal/particle"
	"github.com/decker502/smokefx/pkg/config"
)

// ResourceManager is responsible for centralized management of particle
// textures. Each content item is rasterized on the CPU, tinted with the
// particle colour and uploaded once; later requests for the same content and
// colour reuse the GPU image.
//
// Every TextureFor call takes one reference that the caller gives back with
// ReleaseTexture. A texture is deallocated when its last reference goes, so
// scenes sharing a manager never free each other's live images.
//
// Content without a stable identity (custom paths, caller-supplied images) is
// uploaded on every request and has exactly one reference.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is meant to be driven from the
// game loop goroutine only.
type ResourceManager struct {
	textureCache map[string]*ebiten.Image  // cache key -> tinted texture
	owned        map[*ebiten.Image]*texRef // every live texture
}

// texRef 纹理引用计数；key 为空表示不可缓存
type texRef struct {
	key  string
	refs int
}

// NewResourceManager creates a ResourceManager with an empty cache.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		textureCache: make(map[string]*ebiten.Image),
		owned:        make(map[*ebiten.Image]*texRef),
	}
}

// TextureFor returns the GPU texture for one content item, tinted with
// particleColor at full blend, and takes a reference on it. It never fails:
// content that cannot be rasterized yields a blank texture.
func (rm *ResourceManager) TextureFor(content config.Content, particleColor color.RGBA) *ebiten.Image {
	key, cacheable := content.CacheKey()
	if cacheable {
		key = fmt.Sprintf("%s|%02x%02x%02x%02x", key, particleColor.R, particleColor.G, particleColor.B, particleColor.A)
		if img, ok := rm.textureCache[key]; ok {
			rm.owned[img].refs++
			return img
		}
	} else {
		key = ""
	}

	tinted := particle.Tint(content.Texture(), particleColor, particle.ColorBlendFactor)
	img := ebiten.NewImageFromImage(tinted)
	rm.owned[img] = &texRef{key: key, refs: 1}

	if cacheable {
		rm.textureCache[key] = img
		log.Printf("[ResourceManager] Cached texture %s (%dx%d)", key, tinted.Bounds().Dx(), tinted.Bounds().Dy())
	}
	return img
}

// ReleaseTexture drops one reference taken by TextureFor. The texture is
// deallocated with its last reference. Unknown or nil images are ignored.
func (rm *ResourceManager) ReleaseTexture(img *ebiten.Image) {
	ref, ok := rm.owned[img]
	if !ok {
		return
	}
	ref.refs--
	if ref.refs > 0 {
		return
	}
	delete(rm.owned, img)
	if ref.key != "" {
		delete(rm.textureCache, ref.key)
	}
	img.Deallocate()
}

// RefCount returns the number of outstanding references on img.
func (rm *ResourceManager) RefCount(img *ebiten.Image) int {
	if ref, ok := rm.owned[img]; ok {
		return ref.refs
	}
	return 0
}

// TextureCount returns the number of textures currently owned.
func (rm *ResourceManager) TextureCount() int {
	return len(rm.owned)
}

// ReleaseTextures deallocates every owned texture regardless of references.
// Only for shutdown: images handed out earlier must not be drawn afterwards.
func (rm *ResourceManager) ReleaseTextures() {
	n := len(rm.owned)
	for img := range rm.owned {
		img.Deallocate()
	}
	clear(rm.owned)
	clear(rm.textureCache)
	if n > 0 {
		log.Printf("[ResourceManager] Released %d textures", n)
	}
}
