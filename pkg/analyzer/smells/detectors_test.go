package smells

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtlens/debtlens/pkg/analyzer/structure"
	"github.com/debtlens/debtlens/pkg/config"
)

func TestDefaultDetectorsCanonicalOrder(t *testing.T) {
	detectors := DefaultDetectors(config.DefaultConfig().Detectors)

	names := make([]string, 0, len(detectors))
	for _, d := range detectors {
		names = append(names, d.Name())
	}

	assert.Equal(t, []string{
		"Long Method",
		"Long Parameter List",
		"Large Class",
		"Switch Statements",
		"Temporary Field",
		"Parallel Inheritance Hierarchies",
		"Comments",
		"Duplicate Code",
		"Feature Envy",
	}, names)
}

func TestDefaultDetectorsDisabled(t *testing.T) {
	cfg := config.DefaultConfig().Detectors
	cfg.Disabled = []string{"feature envy", "Switch Statements"}

	for _, d := range DefaultDetectors(cfg) {
		assert.NotEqual(t, "Feature Envy", d.Name())
		assert.NotEqual(t, "Switch Statements", d.Name())
	}
}

func TestLongMethod(t *testing.T) {
	d := &LongMethod{MaxLines: 20}

	src := &Source{Methods: []structure.Method{
		{Name: "short", Lines: 20},
		{Name: "long", Lines: 21},
	}}

	out := d.Scan(src)
	require.Len(t, out, 1)
	assert.Equal(t, CategoryBloaters, out[0].Category)
	assert.Contains(t, out[0].Description, "long")
	assert.True(t, out[0].Detected)
}

func TestLongParameterList(t *testing.T) {
	d := &LongParameterList{MaxParameters: 4}

	src := &Source{Methods: []structure.Method{
		{Name: "ok", Params: "a, b, c, d"},
		{Name: "none", Params: ""},
		{Name: "bloated", Params: "a, b, c, d, e"},
	}}

	out := d.Scan(src)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Description, "bloated")
}

func TestLargeClassBoundary(t *testing.T) {
	d := &LargeClass{MaxLines: 100}

	out := d.Scan(&Source{Classes: []structure.Class{{Name: "Ok", Lines: 100}}})
	assert.Empty(t, out)

	out = d.Scan(&Source{Classes: []structure.Class{{Name: "Big", Lines: 101}}})
	require.Len(t, out, 1)
	assert.Equal(t, "Large Class", out[0].Name)
}

func TestLargeClassFromScannedSource(t *testing.T) {
	// End to end through the regex scanner: a 101-line class body is one
	// record, a 100-line body is none.
	scanner := structure.NewRegexScanner()
	d := &LargeClass{MaxLines: 100}

	big := "class Big {\n" + strings.Repeat("  a();\n", 101) + "}"
	out := d.Scan(&Source{Classes: scanner.Classes(big)})
	assert.Len(t, out, 1)

	ok := "class Ok {\n" + strings.Repeat("  a();\n", 100) + "}"
	out = d.Scan(&Source{Classes: scanner.Classes(ok)})
	assert.Empty(t, out)
}

func TestSwitchStatements(t *testing.T) {
	d := &SwitchStatements{}

	assert.Empty(t, d.Scan(&Source{Clean: "x = 1;"}))
	assert.Empty(t, d.Scan(&Source{Clean: "switchboard(x);"}))

	out := d.Scan(&Source{Clean: "switch (x) { }"})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryOOAbusers, out[0].Category)

	assert.Len(t, d.Scan(&Source{Clean: "switch(x) { }"}), 1)
}

func TestTemporaryField(t *testing.T) {
	d := &TemporaryField{MinUses: 3}

	// "cache" declared and referenced once in total.
	text := "private int cache;\nint x = 1;"
	out := d.Scan(&Source{Raw: text, Clean: text})
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Description, "cache")

	// "total" referenced three times: declaration plus two uses.
	text = "private int total;\ntotal = 1;\nprint(total);\n"
	out = d.Scan(&Source{Raw: text, Clean: text})
	assert.Empty(t, out)
}

func TestTemporaryFieldIgnoresReturnStatements(t *testing.T) {
	d := &TemporaryField{MinUses: 3}

	text := "return total;\n"
	assert.Empty(t, d.Scan(&Source{Raw: text, Clean: text}))
}

func TestParallelInheritance(t *testing.T) {
	d := &ParallelInheritance{MaxExtends: 2}

	two := []structure.Class{{Name: "A"}, {Name: "B"}}

	assert.Empty(t, d.Scan(&Source{Classes: two, Extends: 2}))
	assert.Empty(t, d.Scan(&Source{Classes: two[:1], Extends: 5}))

	out := d.Scan(&Source{Classes: two, Extends: 3})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryChangePreventers, out[0].Category)
}

func TestComments(t *testing.T) {
	d := &Comments{MaxRatio: 0.3}

	assert.Empty(t, d.Scan(&Source{Lines: 10, CommentSpans: 3}))

	out := d.Scan(&Source{Lines: 10, CommentSpans: 4})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryDispensables, out[0].Category)
}

func TestDuplicateCodeSingleRecord(t *testing.T) {
	d := &DuplicateCode{WindowLines: 3, MinChars: 50}

	block := "const alpha = computeAlphaValue(input);\n" +
		"const beta = computeBetaValue(input);\n" +
		"const gamma = computeGammaValue(input);"

	raw := block + "\nseparator();\n" + block + "\nother();\n" + block

	out := d.Scan(&Source{Raw: raw})
	require.Len(t, out, 1)
	assert.Equal(t, "Duplicate Code", out[0].Name)
}

func TestDuplicateCodeShortBlocksIgnored(t *testing.T) {
	d := &DuplicateCode{WindowLines: 3, MinChars: 50}

	// Repeated, but the joined window is under the length floor.
	raw := "a();\nb();\nc();\nx();\na();\nb();\nc();"
	assert.Empty(t, d.Scan(&Source{Raw: raw}))
}

func TestDuplicateCodeNoRepeats(t *testing.T) {
	d := &DuplicateCode{WindowLines: 3, MinChars: 50}

	raw := "const alpha = computeAlphaValue(input);\n" +
		"const beta = computeBetaValue(input);\n" +
		"const gamma = computeGammaValue(input);\n" +
		"const delta = computeDeltaValue(input);"
	assert.Empty(t, d.Scan(&Source{Raw: raw}))
}

func TestFeatureEnvyBoundary(t *testing.T) {
	d := &FeatureEnvy{MaxCalls: 5}

	assert.Empty(t, d.Scan(&Source{Clean: strings.Repeat("order.total();\n", 5)}))

	out := d.Scan(&Source{Clean: strings.Repeat("order.total();\n", 6)})
	require.Len(t, out, 1)
	assert.Equal(t, CategoryCouplers, out[0].Category)
	assert.Contains(t, out[0].Description, "order")
}

func TestFeatureEnvyPerReceiver(t *testing.T) {
	d := &FeatureEnvy{MaxCalls: 5}

	clean := strings.Repeat("cart.add();\n", 6) + strings.Repeat("user.load();\n", 7) + "log.info();\n"
	out := d.Scan(&Source{Clean: clean})
	require.Len(t, out, 2)
	assert.Contains(t, out[0].Description, "cart")
	assert.Contains(t, out[1].Description, "user")
}

func TestCountParameters(t *testing.T) {
	assert.Equal(t, 0, countParameters(""))
	assert.Equal(t, 0, countParameters("   "))
	assert.Equal(t, 1, countParameters("a"))
	assert.Equal(t, 3, countParameters("a, b, c"))
}
