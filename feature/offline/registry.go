package offline

import (
	"errors"
	"fmt"
	"strings"

	"content-catalog/core/esp"
	"content-catalog/feature/catalog/models"
)

const (
	maxFullPlugins  = models.LightCompileIndex
	maxLightPlugins = 0x1000
)

// ErrLoadOrderFull is returned when a load order has more plugins than the
// compile index space can address.
var ErrLoadOrderFull = errors.New("load order full")

// Registry assigns compile indices to plugins in load order.
type Registry struct {
	origins []*models.OriginFile
	byName  map[string]*models.OriginFile
	full    int
	light   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*models.OriginFile)}
}

// Assign registers the next plugin. A plugin is light when its header
// carries the light flag or its name ends in .esl.
func (r *Registry) Assign(name string, header *esp.PluginHeader) (*models.OriginFile, error) {
	key := strings.ToLower(name)
	if _, ok := r.byName[key]; ok {
		return nil, fmt.Errorf("plugin %s registered twice", name)
	}

	f := &models.OriginFile{Name: name}
	if (header != nil && header.IsLight()) || esp.HasLightExtension(name) {
		if r.light >= maxLightPlugins {
			return nil, fmt.Errorf("light plugin %s: %w", name, ErrLoadOrderFull)
		}
		f.Light = true
		f.CompileIndex = models.LightCompileIndex
		f.SmallFileCompileIndex = uint16(r.light)
		r.light++
	} else {
		if r.full >= maxFullPlugins {
			return nil, fmt.Errorf("plugin %s: %w", name, ErrLoadOrderFull)
		}
		f.CompileIndex = uint8(r.full)
		r.full++
	}

	r.origins = append(r.origins, f)
	r.byName[key] = f
	return f, nil
}

// Lookup finds a registered plugin by name, ignoring case.
func (r *Registry) Lookup(name string) (*models.OriginFile, bool) {
	f, ok := r.byName[strings.ToLower(name)]
	return f, ok
}

// Origins returns the registered plugins in load order.
func (r *Registry) Origins() []*models.OriginFile {
	out := make([]*models.OriginFile, len(r.origins))
	copy(out, r.origins)
	return out
}

// GlobalFormID maps a local form ID of a record defined in owner to its
// load-order form ID.
func GlobalFormID(local uint32, owner *models.OriginFile) uint32 {
	if owner.Light {
		return uint32(models.LightCompileIndex)<<24 | uint32(owner.SmallFileCompileIndex)<<12 | local&0x00000FFF
	}
	return uint32(owner.CompileIndex)<<24 | local&0x00FFFFFF
}
