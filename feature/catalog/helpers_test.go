package catalog_test

import (
	"strings"
	"testing"

	"content-catalog/core/esp"
	"content-catalog/core/esp/esptest"
	"content-catalog/core/taskqueue"
	"content-catalog/feature/catalog"
	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeForm struct {
	id     uint32
	tag    esp.Tag
	origin *models.OriginFile
	name   string
	edid   string
	props  map[string]string
}

func (f *fakeForm) FormID() uint32 { return f.id }
func (f *fakeForm) Type() esp.Tag { return f.tag }
func (f *fakeForm) Origin() *models.OriginFile { return f.origin }
func (f *fakeForm) Name() string { return f.name }
func (f *fakeForm) EditorID() string { return f.edid }
func (f *fakeForm) Properties() map[string]string { return f.props }

func form(tag esp.Tag, id uint32, origin *models.OriginFile, name string) *fakeForm {
	return &fakeForm{id: id, tag: tag, origin: origin, name: name}
}

type fakeContent map[esp.Tag][]models.Form

func (c fakeContent) FormsByType(tag esp.Tag) []models.Form { return c[tag] }

func (c fakeContent) add(forms ...*fakeForm) fakeContent {
	for _, f := range forms {
		c[f.tag] = append(c[f.tag], f)
	}
	return c
}

type fakeHandle struct {
	base, live uint32
	ok         bool
}

func (h fakeHandle) Resolve() (uint32, uint32, bool) { return h.base, h.live, h.ok }

func actor(base, live uint32) catalog.ActorHandle {
	return fakeHandle{base: base, live: live, ok: true}
}

type fakeLive struct {
	high, middle, low []catalog.ActorHandle
}

func (l *fakeLive) HighActors() []catalog.ActorHandle { return l.high }
func (l *fakeLive) MiddleActors() []catalog.ActorHandle { return l.middle }
func (l *fakeLive) LowActors() []catalog.ActorHandle { return l.low }

type nameBlacklist map[string]bool

func (b nameBlacklist) Contains(f *models.OriginFile) bool { return b[strings.ToLower(f.Name)] }

type cellNames map[string]string

func (n cellNames) CellName(editorID string) (string, bool) {
	name, ok := n[editorID]
	return name, ok
}

func full(name string, index uint8) *models.OriginFile {
	return &models.OriginFile{Name: name, CompileIndex: index}
}

func light(name string, small uint16) *models.OriginFile {
	return &models.OriginFile{Name: name, Light: true, CompileIndex: models.LightCompileIndex, SmallFileCompileIndex: small}
}

func names(origins []*models.OriginFile) []string {
	out := make([]string, len(origins))
	for i, f := range origins {
		out[i] = f.Name
	}
	return out
}

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// fixture wires a catalog to in-memory collaborators.
type fixture struct {
	content fakeContent
	files   *esptest.Source
	live    *fakeLive
	queue   *taskqueue.Queue
	logs    *observer.ObservedLogs
	deps    catalog.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, logs := observed(zapcore.DebugLevel)
	fx := &fixture{
		content: fakeContent{},
		files:   esptest.NewSource(map[string][]byte{}),
		live:    &fakeLive{},
		queue:   taskqueue.New(8, logger),
		logs:    logs,
	}
	t.Cleanup(fx.queue.Close)
	fx.deps = catalog.Deps{
		Content:    fx.content,
		Containers: fx.files,
		Live:       fx.live,
		Scheduler:  fx.queue,
		Logger:     logger,
	}
	return fx
}

func (fx *fixture) catalog() *catalog.Catalog {
	return catalog.New(fx.deps)
}

// endToEnd loads A.esp with one armor and B.esp with one weapon and one
// cell whose editor ID is TestCell.
func endToEnd(t *testing.T) (*fixture, *models.OriginFile, *models.OriginFile) {
	t.Helper()
	fx := newFixture(t)
	a := full("A.esp", 0)
	b := full("B.esp", 1)

	fx.content.add(
		form(esp.TagARMO, 0x00000800, a, "Iron Helm"),
		form(esp.TagWEAP, 0x01000801, b, "Steel Sword"),
		form(esp.TagCELL, 0x01000802, b, ""),
	)
	fx.files.Files["A.esp"] = esptest.NewPlugin(0).
		BeginGroup(esp.TagARMO, 0).
		Record(esp.TagARMO, 0x00000800, esptest.EDID("IronHelm"), esptest.FULL("Iron Helm")).
		EndGroup().
		Bytes()
	fx.files.Files["B.esp"] = esptest.NewPlugin(0, "A.esp").
		BeginGroup(esp.TagWEAP, 0).
		Record(esp.TagWEAP, 0x01000801, esptest.EDID("SteelSword")).
		EndGroup().
		BeginGroup(esp.TagCELL, 0).
		Record(esp.TagCELL, 0x01000802, esptest.EDID("TestCell"), esptest.FULL("Test Cell")).
		EndGroup().
		Bytes()
	return fx, a, b
}
