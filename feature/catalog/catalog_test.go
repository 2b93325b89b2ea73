package catalog_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"content-catalog/core/esp"
	"content-catalog/feature/catalog"
	"content-catalog/feature/catalog/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildAll_EndToEnd(t *testing.T) {
	fx, a, b := endToEnd(t)
	cat := fx.catalog()

	cat.RebuildAll(context.Background())

	items := names(cat.OriginSet(models.CategoryItem))
	sort.Strings(items)
	assert.Equal(t, []string{"A.esp", "B.esp"}, items)

	assert.True(t, cat.HasCapability(a, models.CapabilityArmor))
	assert.False(t, cat.HasCapability(a, models.CapabilityWeapon))
	assert.True(t, cat.HasCapability(b, models.CapabilityWeapon))
	assert.True(t, cat.HasCapability(b, models.CapabilityCell))

	ordered := names(cat.SortedOrigins(models.CategoryAll, models.SortCompileIndexAsc))
	if diff := cmp.Diff([]string{"A.esp", "B.esp"}, ordered); diff != "" {
		t.Errorf("compile index order mismatch (-want +got):\n%s", diff)
	}

	cells := cat.Cells()
	require.Len(t, cells, 1)
	assert.Equal(t, "TestCell", cells[0].EditorID)
	assert.Equal(t, "B.esp", cells[0].OriginName)
	assert.Same(t, b, cells[0].Origin)

	assert.Equal(t, []string{"B.esp"}, names(cat.OriginSet(models.CategoryCell)))
	assert.Equal(t, []string{"A.esp", "B.esp"}, cat.SortedNames())
	assert.Equal(t, map[models.Category]int{
		models.CategoryItem:   2,
		models.CategoryNPC:    0,
		models.CategoryStatic: 0,
		models.CategoryCell:   1,
	}, cat.Counts())
	assert.Zero(t, fx.files.OpenHandles())
	assert.Equal(t, []string{"B.esp"}, fx.files.Opened())
}

func TestHasCapability_MatchesClassifiedRecords(t *testing.T) {
	fx := newFixture(t)
	items := full("Items.esp", 1)
	statics := full("Statics.esp", 2)
	unseen := full("Unseen.esp", 3)

	fx.content.add(
		form(esp.TagBOOK, 0x01000001, items, "Book"),
		form(esp.TagKEYM, 0x01000002, items, "Key"),
		form(esp.TagLIGH, 0x02000001, statics, "Torch"),
		form(esp.TagTREE, 0x02000002, statics, "Pine"),
	)
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	want := map[*models.OriginFile][]models.Capability{
		items:   {models.CapabilityBook, models.CapabilityKey},
		statics: {models.CapabilityTree, models.CapabilityLight},
		unseen:  nil,
	}
	for origin, caps := range want {
		for _, capability := range models.AllCapabilities() {
			expected := false
			for _, c := range caps {
				expected = expected || c == capability
			}
			assert.Equal(t, expected, cat.HasCapability(origin, capability), "%s %s", origin.Name, capability)
		}
	}

	// A rebuild that classifies nothing for Items.esp leaves it without flags.
	fx.content[esp.TagBOOK] = nil
	fx.content[esp.TagKEYM] = nil
	cat.RebuildAll(context.Background())
	assert.Zero(t, cat.Capabilities(items))
	assert.NotContains(t, cat.SortedNames(), "Items.esp")
}

func TestRebuildAll_Idempotent(t *testing.T) {
	fx, a, b := endToEnd(t)
	fx.content.add(form(esp.TagNPC, 0x00000900, a, "Guard"))
	cat := fx.catalog()

	snapshot := func() (map[models.Category][]string, map[string]models.CapabilityFlags) {
		sets := map[models.Category][]string{}
		for _, c := range []models.Category{models.CategoryAll, models.CategoryItem, models.CategoryNPC, models.CategoryStatic, models.CategoryCell} {
			n := names(cat.OriginSet(c))
			sort.Strings(n)
			sets[c] = n
		}
		flags := map[string]models.CapabilityFlags{
			a.Name: cat.Capabilities(a),
			b.Name: cat.Capabilities(b),
		}
		return sets, flags
	}

	cat.RebuildAll(context.Background())
	sets1, flags1 := snapshot()
	cells1 := cat.Cells()

	cat.RebuildAll(context.Background())
	sets2, flags2 := snapshot()

	if diff := cmp.Diff(sets1, sets2); diff != "" {
		t.Errorf("origin sets changed (-first +second):\n%s", diff)
	}
	assert.Equal(t, flags1, flags2)
	assert.Len(t, cat.Cells(), len(cells1))
	assert.Len(t, cat.Records(models.CategoryNPC), 1)
}

func TestClassify_SkipsUnresolvedAndPlayer(t *testing.T) {
	fx := newFixture(t)
	skyrim := full("Skyrim.esm", 0)
	fx.content.add(
		form(esp.TagNPC, models.PlayerFormID, skyrim, "Prisoner"),
		form(esp.TagNPC, 0x00013BBF, skyrim, "Lydia"),
		form(esp.TagWEAP, 0x00012EB7, nil, "Orphan"),
		form(esp.TagWEAP, 0x00012EB8, &models.OriginFile{}, "Unnamed"),
	)
	fx.content[esp.TagARMO] = []models.Form{nil}

	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	npcs := cat.Records(models.CategoryNPC)
	require.Len(t, npcs, 1)
	assert.Equal(t, "Lydia", npcs[0].Name)
	assert.Empty(t, cat.Records(models.CategoryItem))
	assert.Equal(t, []string{"Skyrim.esm"}, cat.SortedNames())
	assert.Positive(t, fx.logs.FilterMessage("Record skipped").Len())
}

func TestRebuildCategory(t *testing.T) {
	fx, a, b := endToEnd(t)
	fx.content.add(form(esp.TagSTAT, 0x00000A00, a, "Rock"))
	cat := fx.catalog()
	cat.RebuildAll(context.Background())
	require.True(t, cat.HasCapability(a, models.CapabilityStatic))

	// Remove every item and rebuild items only.
	fx.content[esp.TagARMO] = nil
	fx.content[esp.TagWEAP] = nil
	cat.RebuildCategory(context.Background(), models.CategoryItem)

	assert.Empty(t, cat.Records(models.CategoryItem))
	assert.Empty(t, cat.OriginSet(models.CategoryItem))
	assert.False(t, cat.HasCapability(a, models.CapabilityArmor))
	assert.False(t, cat.HasCapability(b, models.CapabilityWeapon))
	assert.True(t, cat.HasCapability(a, models.CapabilityStatic))
	assert.True(t, cat.HasCapability(b, models.CapabilityCell))

	all := names(cat.OriginSet(models.CategoryAll))
	sort.Strings(all)
	assert.Equal(t, []string{"A.esp", "B.esp"}, all)

	cat.RebuildCategory(context.Background(), models.Category(42))
	assert.Equal(t, 1, fx.logs.FilterMessage("Unknown category, nothing rebuilt").Len())
}

func TestSortedOrigins_Alphabetical(t *testing.T) {
	fx := newFixture(t)
	for i, name := range []string{"zeta.esp", "Alpha.esm", "beta.esl", "Gamma.esp", "alpha.esp"} {
		fx.content.add(form(esp.TagMISC, uint32(i+1), full(name, uint8(i)), "Thing"))
	}
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	sorted := cat.SortedOrigins(models.CategoryAll, models.SortAlphabetical)
	got := names(sorted)

	set := names(cat.OriginSet(models.CategoryAll))
	assert.ElementsMatch(t, set, got)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, strings.ToLower(got[i-1]), strings.ToLower(got[i]))
	}

	again := names(cat.SortedOrigins(models.CategoryAll, models.SortAlphabetical))
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("sort is not stable (-first +second):\n%s", diff)
	}
	assert.Equal(t, got, cat.SortedNames())
}

func TestSortOrigins_CompileIndex(t *testing.T) {
	origins := []*models.OriginFile{
		light("Light2.esl", 2),
		full("Update.esm", 1),
		light("Light0.esl", 0),
		full("Skyrim.esm", 0),
		full("Mod.esp", 5),
	}

	catalog.SortOrigins(origins, models.SortCompileIndexAsc)
	assert.Equal(t, []string{"Skyrim.esm", "Update.esm", "Mod.esp", "Light0.esl", "Light2.esl"}, names(origins))

	catalog.SortOrigins(origins, models.SortCompileIndexDesc)
	assert.Equal(t, []string{"Light2.esl", "Light0.esl", "Mod.esp", "Update.esm", "Skyrim.esm"}, names(origins))
}

func TestSortOrigins_InvalidFilesDoNotPanic(t *testing.T) {
	origins := []*models.OriginFile{full("B.esp", 1), nil, {}, full("A.esp", 0)}
	assert.NotPanics(t, func() {
		catalog.SortOrigins(origins, models.SortAlphabetical)
		catalog.SortOrigins(origins, models.SortCompileIndexAsc)
	})
	assert.Len(t, origins, 4)
}

func TestSortedOrigins_UnknownEnums(t *testing.T) {
	fx, _, _ := endToEnd(t)
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	got := cat.SortedOrigins(models.Category(99), models.SortOrder(99))
	assert.Len(t, got, 2)
	assert.Equal(t, 1, fx.logs.FilterMessage("Unknown category, using all origins").Len())
	assert.Equal(t, 1, fx.logs.FilterMessage("Unknown sort order, leaving origins unsorted").Len())
}

func TestFilteredNames_NeverReturnsBlacklisted(t *testing.T) {
	fx := newFixture(t)
	base := full("Base.esm", 0)
	banned := full("Banned.esp", 1)
	other := full("Other.esp", 2)
	fx.content.add(
		form(esp.TagARMO, 0x00000001, base, "Helm"),
		form(esp.TagNPC, 0x00000002, base, "Guard"),
		form(esp.TagARMO, 0x01000001, banned, "Cursed Helm"),
		form(esp.TagDOOR, 0x01000002, banned, "Door"),
		form(esp.TagNPC, 0x01000003, banned, "Bandit"),
		form(esp.TagFLOR, 0x02000001, other, "Flower"),
	)
	fx.deps.Blacklist = nameBlacklist{"banned.esp": true}
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	categories := []models.Category{models.CategoryAll, models.CategoryItem, models.CategoryNPC, models.CategoryStatic, models.CategoryCell}
	orders := []models.SortOrder{models.SortNone, models.SortAlphabetical, models.SortCompileIndexAsc, models.SortCompileIndexDesc}
	secondaries := append([]models.Capability{models.CapabilityNone}, models.AllCapabilities()...)
	for _, c := range categories {
		for _, o := range orders {
			for _, s := range secondaries {
				assert.NotContains(t, cat.FilteredNames(c, o, s), "Banned.esp", "%s/%s/%s", c, o, s)
			}
		}
	}

	assert.Equal(t, []string{"Base.esm", "Other.esp"}, cat.FilteredNames(models.CategoryAll, models.SortAlphabetical, models.CapabilityNone))
}

func TestFilteredNames_SecondaryCapability(t *testing.T) {
	fx := newFixture(t)
	lamps := full("Lamps.esp", 1)
	flowers := full("Flowers.esp", 2)
	fx.content.add(
		form(esp.TagLIGH, 0x01000001, lamps, "Lamp"),
		form(esp.TagFLOR, 0x02000001, flowers, "Flower"),
	)
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	order := models.SortCompileIndexAsc
	assert.Equal(t, []string{"Lamps.esp", "Flowers.esp"}, cat.FilteredNames(models.CategoryStatic, order, models.CapabilityNone))
	assert.Equal(t, []string{"Lamps.esp"}, cat.FilteredNames(models.CategoryStatic, order, models.CapabilityLight))
	assert.Equal(t, []string{"Flowers.esp"}, cat.FilteredNames(models.CategoryStatic, order, models.CapabilityFlora))
	assert.Empty(t, cat.FilteredNames(models.CategoryStatic, order, models.CapabilityArmor))

	got := cat.FilteredNames(models.CategoryStatic, order, models.Capability(77))
	assert.Equal(t, []string{"Lamps.esp", "Flowers.esp"}, got)
	assert.Equal(t, 1, fx.logs.FilterMessage("Unknown capability filter, not restricting").Len())
}

func TestFilteredNamesContaining(t *testing.T) {
	fx := newFixture(t)
	for i, name := range []string{"Dawnguard.esm", "HearthFires.esm", "Dragonborn.esm", "Unofficial Patch.esp"} {
		fx.content.add(form(esp.TagMISC, uint32(i+1), full(name, uint8(i)), "Thing"))
	}
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	got := cat.FilteredNamesContaining(models.CategoryAll, models.SortAlphabetical, models.CapabilityNone, "DR")
	assert.Equal(t, []string{"Dragonborn.esm"}, got)

	got = cat.FilteredNamesContaining(models.CategoryAll, models.SortAlphabetical, models.CapabilityNone, "guard")
	assert.Equal(t, []string{"Dawnguard.esm"}, got)

	got = cat.FilteredNamesContaining(models.CategoryAll, models.SortCompileIndexAsc, models.CapabilityNone, "")
	assert.Len(t, got, 4)
}

func TestCellByEditorID(t *testing.T) {
	fx, _, b := endToEnd(t)
	fx.deps.CellNames = cellNames{"TestCell": "The Test Cell"}
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	cell := cat.CellByEditorID("TestCell")
	require.True(t, cell.Found())
	assert.Equal(t, "The Test Cell", cell.Name)
	assert.Same(t, b, cell.Origin)

	missing := cat.CellByEditorID("Nowhere")
	assert.Same(t, models.NotFoundCell, missing)
	assert.False(t, missing.Found())
	assert.Equal(t, "Not Found", missing.Name)
}

func TestCellName_FallsBackToDescriptions(t *testing.T) {
	fx, _, _ := endToEnd(t)
	fx.deps.CellNames = cellNames{}
	fx.deps.Descriptions = cellNames{"TestCell": "Described Cell"}
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	assert.Equal(t, "Described Cell", cat.CellByEditorID("TestCell").Name)
}

func TestOriginByName(t *testing.T) {
	fx, a, _ := endToEnd(t)
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	got, ok := cat.OriginByName("A.esp")
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = cat.OriginByName("a.ESP")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = cat.OriginByName("C.esp")
	assert.False(t, ok)
}

func TestRebuild_MismatchedFormSetsNoCapability(t *testing.T) {
	fx := newFixture(t)
	odd := full("Odd.esp", 3)
	fx.content[esp.TagARMO] = append(fx.content[esp.TagARMO], form(esp.TagNPC, 0x03000001, odd, "Stray"))
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	assert.Empty(t, cat.Records(models.CategoryItem))
	assert.Empty(t, cat.Records(models.CategoryNPC))
	assert.False(t, cat.HasCapability(odd, models.CapabilityNPC))
	assert.False(t, cat.HasCapability(odd, models.CapabilityArmor))
	assert.Zero(t, cat.Capabilities(odd))
	assert.NotContains(t, cat.SortedNames(), "Odd.esp")
}

func TestSortOrigins_AlphabeticalFoldsASCIIOnly(t *testing.T) {
	origins := []*models.OriginFile{
		full("\u00e9a.esp", 0),
		full("B.esp", 1),
		full("\u00c9z.esp", 2),
		full("a.esp", 3),
	}
	catalog.SortOrigins(origins, models.SortAlphabetical)

	// Only A-Z are folded, so the upper-case E acute (0xC3 0x89) sorts
	// before the lower-case one (0xC3 0xA9).
	assert.Equal(t, []string{"a.esp", "B.esp", "\u00c9z.esp", "\u00e9a.esp"}, names(origins))
}

func TestRecords_PropertiesOnDemand(t *testing.T) {
	fx := newFixture(t)
	origin := full("Weapons.esp", 1)
	sword := form(esp.TagWEAP, 0x01000001, origin, "Sword")
	sword.props = map[string]string{"damage": "7"}
	fx.content.add(sword)
	cat := fx.catalog()
	cat.RebuildAll(context.Background())

	records := cat.Records(models.CategoryItem)
	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].Properties()["damage"])

	sword.props["damage"] = "9"
	assert.Equal(t, "9", records[0].Properties()["damage"])
}
