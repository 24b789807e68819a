package prodbx

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSectionsOriginalOnly(t *testing.T) {
	page := `<html><body>
		<h1>Contract No. 426</h1>
		<p>Total Contract Price $88,000.00</p>
	</body></html>`

	sections := DetectSections(page)

	require.Len(t, sections, 1)
	assert.Equal(t, types.SectionOriginal, sections[0].Type)
	assert.True(t, sections[0].Selected)
	assert.Nil(t, sections[0].Number)
}

func TestDetectSectionsOptionalPackageOnly(t *testing.T) {
	page := `<html><body><p>-OPTIONAL PACKAGE 3-</p><p>Water feature upgrade</p></body></html>`

	sections := DetectSections(page)

	require.Len(t, sections, 1)
	assert.Equal(t, types.SectionOptionalPackage, sections[0].Type)
	require.NotNil(t, sections[0].Number)
	assert.Equal(t, 3, *sections[0].Number)
	assert.False(t, sections[0].Selected, "optional packages are opt-in")
	assert.Equal(t, "Water feature upgrade", sections[0].Name)
}

func TestDetectSectionsPackageNameTruncated(t *testing.T) {
	longName := strings.Repeat("x", 150)
	page := "<p>-OPTIONAL PACKAGE 1-</p><p>" + longName + "</p>"

	sections := DetectSections(page)

	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Name, 100)
}

func TestDetectSectionsPackageNameTruncatesOnRuneBoundary(t *testing.T) {
	// A two-byte rune straddling the cut point must not be split.
	longName := strings.Repeat("x", 99) + "é" + strings.Repeat("y", 50)
	page := "<p>-OPTIONAL PACKAGE 1-</p><p>" + longName + "</p>"

	sections := DetectSections(page)

	require.Len(t, sections, 1)
	name := sections[0].Name
	assert.True(t, utf8.ValidString(name))
	assert.Equal(t, strings.Repeat("x", 99), name)
}

func TestDetectSectionsPackagesAndAddendum(t *testing.T) {
	page := `<html><body>
		<p>Addendum # : 2</p>
		<p>-OPTIONAL PACKAGE 1-</p><p>Spa add-on</p>
		<p>-OPTIONAL PACKAGE 2-</p><p>Outdoor kitchen</p>
	</body></html>`

	sections := DetectSections(page)

	require.Len(t, sections, 3)
	assert.Equal(t, types.SectionOptionalPackage, sections[0].Type)
	assert.Equal(t, types.SectionOptionalPackage, sections[1].Type)
	assert.Equal(t, "Spa add-on", sections[0].Name)
	assert.Equal(t, "Outdoor kitchen", sections[1].Name)

	last := sections[2]
	assert.Equal(t, types.SectionAddendum, last.Type)
	require.NotNil(t, last.Number)
	assert.Equal(t, 2, *last.Number)
	assert.True(t, last.Selected)
}

func TestDetectSectionsFallbackOnNoMarkers(t *testing.T) {
	sections := DetectSections("<html><body><p>nothing recognizable here</p></body></html>")

	require.Len(t, sections, 1, "downstream always expects at least one candidate section")
	assert.Equal(t, types.SectionOriginal, sections[0].Type)
	assert.True(t, sections[0].Selected)
}

func TestDetectSectionsFallbackOnGarbageMarkup(t *testing.T) {
	sections := DetectSections("\x00\x01<<<<not even close to html")

	require.Len(t, sections, 1)
	assert.Equal(t, types.SectionOriginal, sections[0].Type)
}

func TestDefaultSelectedPolicyTable(t *testing.T) {
	assert.True(t, DefaultSelected(types.SectionOriginal))
	assert.False(t, DefaultSelected(types.SectionOptionalPackage))
	assert.True(t, DefaultSelected(types.SectionAddendum))
}
