package fastdl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/fastdl/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBZ2(t *testing.T, path string) []byte {
	t.Helper()
	compressed, err := os.ReadFile(path)
	require.NoError(t, err)
	data, err := util.BZip2{}.Decompress(compressed)
	require.NoError(t, err)
	return data
}

func TestMaterialize_WritesBothArtifacts(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "materials", "metal", "plate.vmt"), "0123456789")

	var logs logCapture
	m := NewMaterializer(testConfig(t, out, &logs))

	res, err := m.Materialize(SourceFile{Root: root, Category: "materials", Rel: filepath.Join("metal", "plate.vmt")})
	require.NoError(t, err)
	assert.Equal(t, Result{Copied: true, Compressed: true}, res)
	assert.Equal(t, 2, res.Writes())

	got, err := os.ReadFile(filepath.Join(out, "materials", "metal", "plate.vmt"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(got))
	assert.Equal(t, "0123456789", string(readBZ2(t, filepath.Join(out, "materials", "metal", "plate.vmt.bz2"))))

	assert.Equal(t, 1, logs.count(t, "copied"))
	assert.Equal(t, 1, logs.count(t, "compressed"))
}

func TestMaterialize_CaseNormalization(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "models", "Foo", "Bar.MDL"), "studiomdl")

	var logs logCapture
	m := NewMaterializer(testConfig(t, out, &logs))

	res, err := m.Materialize(SourceFile{Root: root, Category: "models", Rel: filepath.Join("Foo", "Bar.MDL")})
	require.NoError(t, err)
	assert.True(t, res.Copied)
	assert.True(t, res.Compressed)

	assert.ElementsMatch(t, []string{"models/foo/bar.mdl", "models/foo/bar.mdl.bz2"}, listFiles(t, out))

	// The input tree gains a lowercase sibling; on a case-insensitive
	// filesystem it is the original file itself.
	repaired, err := os.ReadFile(filepath.Join(root, "models", "foo", "bar.mdl"))
	require.NoError(t, err)
	assert.Equal(t, "studiomdl", string(repaired))
	original, err := os.ReadFile(filepath.Join(root, "models", "Foo", "Bar.MDL"))
	require.NoError(t, err)
	assert.Equal(t, "studiomdl", string(original))
}

func TestMaterialize_LowercaseSourceIsNotRepaired(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "sound", "wind.wav"), "RIFF")

	var logs logCapture
	m := NewMaterializer(testConfig(t, out, &logs))

	res, err := m.Materialize(SourceFile{Root: root, Category: "sound", Rel: "wind.wav"})
	require.NoError(t, err)
	assert.False(t, res.Repaired)
	assert.Equal(t, []string{"sound/wind.wav"}, listFiles(t, root))
}

func TestMaterialize_RepairDisabled(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "maps", "GM_Test.bsp"), "VBSP")

	var logs logCapture
	cfg := testConfig(t, out, &logs)
	cfg.RepairSourceCase = false
	m := NewMaterializer(cfg)

	res, err := m.Materialize(SourceFile{Root: root, Category: "maps", Rel: "GM_Test.bsp"})
	require.NoError(t, err)
	assert.False(t, res.Repaired)
	assert.Equal(t, 0, logs.count(t, "repaired source case"))
	assert.ElementsMatch(t, []string{"maps/gm_test.bsp", "maps/gm_test.bsp.bz2"}, listFiles(t, out))
}

func TestMaterialize_Idempotent(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "particles", "Fire.pcf"), "pcf")
	src := SourceFile{Root: root, Category: "particles", Rel: "Fire.pcf"}

	var logs logCapture
	m := NewMaterializer(testConfig(t, out, &logs))

	first, err := m.Materialize(src)
	require.NoError(t, err)
	assert.Positive(t, first.Writes())

	second, err := m.Materialize(src)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Writes())
	assert.Equal(t, 2, second.Skipped)
}

func TestMaterialize_ExistingArtifactNotOverwritten(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "resource", "fonts", "font.ttf"), "new content")
	writeFile(t, filepath.Join(out, "resource", "fonts", "font.ttf"), "stale")

	var logs logCapture
	m := NewMaterializer(testConfig(t, out, &logs))

	res, err := m.Materialize(SourceFile{Root: root, Category: "resource", Rel: filepath.Join("fonts", "font.ttf")})
	require.NoError(t, err)
	assert.False(t, res.Copied)
	assert.True(t, res.Compressed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, logs.count(t, "exists, skipping"))

	got, err := os.ReadFile(filepath.Join(out, "resource", "fonts", "font.ttf"))
	require.NoError(t, err)
	assert.Equal(t, "stale", string(got))
	assert.Equal(t, "new content", string(readBZ2(t, filepath.Join(out, "resource", "fonts", "font.ttf.bz2"))))
}

func TestMaterialize_DryRun(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "models", "Crate.mdl"), "mdl")

	var logs logCapture
	cfg := testConfig(t, out, &logs)
	cfg.DryRun = true
	m := NewMaterializer(cfg)

	res, err := m.Materialize(SourceFile{Root: root, Category: "models", Rel: "Crate.mdl"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Writes())
	assert.Equal(t, 3, logs.count(t, "would write"))
	assert.Empty(t, listFiles(t, out))
	assert.Equal(t, []string{"models/Crate.mdl"}, listFiles(t, root))
}

func TestMaterialize_MissingSource(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()

	var logs logCapture
	m := NewMaterializer(testConfig(t, out, &logs))

	_, err := m.Materialize(SourceFile{Root: root, Category: "materials", Rel: "gone.vmt"})
	require.ErrorIs(t, err, util.ErrIOFailure)
	assert.Contains(t, err.Error(), "gone.vmt")
}

func TestMaterialize_Targets(t *testing.T) {
	var logs logCapture
	m := NewMaterializer(testConfig(t, "out", &logs))

	plain, compressed := m.Targets(SourceFile{Root: "addon", Category: "models", Rel: filepath.Join("Foo", "Bar.MDL")})
	assert.Equal(t, filepath.Join("out", "models", "foo", "bar.mdl"), plain)
	assert.Equal(t, filepath.Join("out", "models", "foo", "bar.mdl.bz2"), compressed)
}

func TestMaterialize_MixedCaseCategoryDir(t *testing.T) {
	root, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(root, "Materials", "plate.vmt"), "vmt")

	var logs logCapture
	m := NewMaterializer(testConfig(t, out, &logs))

	res, err := m.Materialize(SourceFile{Root: root, Category: "materials", Dir: "Materials", Rel: "plate.vmt"})
	require.NoError(t, err)
	assert.True(t, res.Copied)
	assert.True(t, res.Compressed)
	assert.ElementsMatch(t, []string{"materials/plate.vmt", "materials/plate.vmt.bz2"}, listFiles(t, out))

	// Only the category was upper case, which is enough to need a repair.
	repaired, err := os.ReadFile(filepath.Join(root, "materials", "plate.vmt"))
	require.NoError(t, err)
	assert.Equal(t, "vmt", string(repaired))
}
