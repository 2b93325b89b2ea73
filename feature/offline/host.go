package offline

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"content-catalog/core/esp"
	"content-catalog/feature/catalog"
	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type rawRecord struct {
	tag      esp.Tag
	formID   uint32
	editorID string
	name     string
}

type parsedPlugin struct {
	name    string
	header  *esp.PluginHeader
	records []rawRecord
	err     error
}

// Host serves catalog content read from plugin files.
type Host struct {
	source    esp.Source
	registry  *Registry
	forms     map[esp.Tag]map[uint32]*Form
	cellNames map[string]string
	logger    *zap.Logger
}

// Load reads the plugins named in order from source. Plugins that cannot be
// read are logged and left out of the load order; only cancellation of ctx
// fails the load.
func Load(ctx context.Context, source esp.Source, order []string, logger *zap.Logger) (*Host, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	wanted := make(map[esp.Tag]bool)
	for _, tag := range catalog.CatalogedTags() {
		wanted[tag] = true
	}

	results := make([]parsedPlugin, len(order))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range order {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parsePlugin(gctx, source, name, wanted)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load plugins: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to load plugins: %w", err)
	}

	h := &Host{
		source:    source,
		registry:  NewRegistry(),
		forms:     make(map[esp.Tag]map[uint32]*Form),
		cellNames: make(map[string]string),
		logger:    logger,
	}

	var loaded []parsedPlugin
	for _, p := range results {
		if p.err != nil {
			logger.Warn("Plugin skipped", zap.String("plugin", p.name), zap.Error(p.err))
			continue
		}
		if _, err := h.registry.Assign(p.name, p.header); err != nil {
			logger.Warn("Plugin skipped", zap.String("plugin", p.name), zap.Error(err))
			continue
		}
		loaded = append(loaded, p)
	}

	total := 0
	for _, p := range loaded {
		total += h.index(p)
	}

	logger.Info("Load order indexed",
		zap.Int("plugins", len(loaded)),
		zap.Int("skipped", len(order)-len(loaded)),
		zap.Int("records", total),
	)
	return h, nil
}

func parsePlugin(ctx context.Context, source esp.Source, name string, wanted map[esp.Tag]bool) (p parsedPlugin) {
	p.name = name
	c, err := source.Open(ctx, name)
	if err != nil {
		p.err = fmt.Errorf("failed to open: %w", err)
		return p
	}
	defer func() {
		if err := c.Close(); err != nil && p.err == nil {
			p.err = fmt.Errorf("failed to close: %w", err)
		}
	}()

	header, err := esp.ReadPluginHeader(c)
	if err != nil {
		p.err = fmt.Errorf("failed to read header: %w", err)
		return p
	}
	p.header = header

	for c.NextRecord() {
		if !wanted[c.RecordType()] {
			continue
		}
		rec := rawRecord{tag: c.RecordType(), formID: c.RecordFormID()}
		for c.NextSubrecord() {
			typ := c.SubrecordType()
			if typ != esp.TagEDID && (typ != esp.TagFULL || header.IsLocalized()) {
				continue
			}
			buf := make([]byte, c.SubrecordSize())
			n, ok := c.ReadSubrecord(buf)
			if !ok {
				continue
			}
			if typ == esp.TagEDID {
				rec.editorID = esp.CString(buf[:n])
			} else {
				rec.name = esp.CString(buf[:n])
			}
		}
		p.records = append(p.records, rec)
	}
	if err := c.Err(); err != nil {
		p.err = fmt.Errorf("failed to read records: %w", err)
	}
	return p
}

// index merges the records of p into the form table and returns how many
// were indexed.
func (h *Host) index(p parsedPlugin) int {
	self, _ := h.registry.Lookup(p.name)
	masters := make([]*models.OriginFile, len(p.header.Masters))
	for i, m := range p.header.Masters {
		if f, ok := h.registry.Lookup(m); ok {
			masters[i] = f
			continue
		}
		h.logger.Warn("Master not loaded", zap.String("plugin", p.name), zap.String("master", m))
	}

	indexed, orphaned := 0, 0
	for _, rec := range p.records {
		owner := self
		if idx := int(rec.formID >> 24); idx < len(masters) {
			owner = masters[idx]
		}
		if owner == nil {
			orphaned++
			continue
		}
		id := GlobalFormID(rec.formID, owner)

		byID := h.forms[rec.tag]
		if byID == nil {
			byID = make(map[uint32]*Form)
			h.forms[rec.tag] = byID
		}
		f, ok := byID[id]
		if !ok {
			f = &Form{id: id, tag: rec.tag, master: owner}
			byID[id] = f
		} else {
			f.overrides = append(f.overrides, self.Name)
		}
		f.origin = self
		if rec.editorID != "" {
			f.editorID = rec.editorID
		}
		if rec.name != "" {
			f.name = rec.name
		}
		if rec.tag == esp.TagCELL && f.editorID != "" && f.name != "" {
			h.cellNames[f.editorID] = f.name
		}
		indexed++
	}

	if orphaned > 0 {
		h.logger.Debug("Records with unloaded masters skipped", zap.String("plugin", p.name), zap.Int("records", orphaned))
	}
	return indexed
}

// FormsByType implements catalog.ContentSource. Forms are ordered by
// load-order form ID.
func (h *Host) FormsByType(tag esp.Tag) []models.Form {
	byID := h.forms[tag]
	forms := make([]*Form, 0, len(byID))
	for _, f := range byID {
		forms = append(forms, f)
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].id < forms[j].id })

	out := make([]models.Form, len(forms))
	for i, f := range forms {
		out[i] = f
	}
	return out
}

// Open implements catalog.ContainerOpener.
func (h *Host) Open(ctx context.Context, name string) (esp.Container, error) {
	return h.source.Open(ctx, name)
}

// CellName implements catalog.CellNameLookup from the cells' FULL names.
func (h *Host) CellName(editorID string) (string, bool) {
	name, ok := h.cellNames[editorID]
	return name, ok
}

// Origins returns the loaded plugins in load order.
func (h *Host) Origins() []*models.OriginFile {
	return h.registry.Origins()
}

// OriginByName looks a loaded plugin up by name, ignoring case.
func (h *Host) OriginByName(name string) (*models.OriginFile, bool) {
	return h.registry.Lookup(name)
}

// HighActors implements catalog.LiveInstances. Offline hosts have no live
// actors.
func (h *Host) HighActors() []catalog.ActorHandle { return nil }

// MiddleActors implements catalog.LiveInstances.
func (h *Host) MiddleActors() []catalog.ActorHandle { return nil }

// LowActors implements catalog.LiveInstances.
func (h *Host) LowActors() []catalog.ActorHandle { return nil }

// Form is a record as seen after the whole load order was applied.
type Form struct {
	id        uint32
	tag       esp.Tag
	origin    *models.OriginFile
	master    *models.OriginFile
	name      string
	editorID  string
	overrides []string
}

func (f *Form) FormID() uint32 { return f.id }
func (f *Form) Type() esp.Tag { return f.tag }
func (f *Form) Origin() *models.OriginFile { return f.origin }
func (f *Form) Name() string { return f.name }
func (f *Form) EditorID() string { return f.editorID }

// Properties reports where the form was defined and which plugins
// overrode it.
func (f *Form) Properties() map[string]string {
	props := map[string]string{
		"defined_in": f.master.Name,
		"overrides":  fmt.Sprint(len(f.overrides)),
	}
	if len(f.overrides) > 0 {
		props["overridden_by"] = strings.Join(f.overrides, ",")
	}
	return props
}
