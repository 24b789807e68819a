package prodbx

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/patterns"
	"github.com/AquaBuilt/aqua-built-backend/types"
)

// sectionNameMaxLen truncates best-effort optional-package names.
const sectionNameMaxLen = 100

// defaultSelected is the default-import policy per section type. Keeping it
// as one lookup table makes the policy auditable in isolation: original
// contract and addendum content import by default, optional packages are
// opt-in.
var defaultSelected = map[types.SectionType]bool{
	types.SectionOriginal:        true,
	types.SectionOptionalPackage: false,
	types.SectionAddendum:        true,
}

// DefaultSelected reports the default-import intent for a section type.
func DefaultSelected(t types.SectionType) bool {
	return defaultSelected[t]
}

// DetectSections determines which logical sections a fetched page contains.
// It is called only after a successful fetch and never fails: any detection
// problem, including a panic during text extraction, degrades to the single
// original-section fallback downstream code expects.
func DetectSections(markup string) (sections []types.DetectedSection) {
	log := logger.GetLogger()

	defer func() {
		if r := recover(); r != nil {
			log.Warnw("Section detection panicked; falling back to original section", "panic", r)
			sections = fallbackSections()
		}
	}()

	text, err := VisibleText(markup)
	if err != nil {
		log.Warnw("Page text extraction failed; falling back to original section", "error", err)
		return fallbackSections()
	}

	if hasContractIdentityMarker(text) {
		sections = append(sections, types.DetectedSection{
			Type:     types.SectionOriginal,
			Selected: DefaultSelected(types.SectionOriginal),
		})
	}

	for _, idx := range patterns.OptionalPackageMarker.FindAllStringSubmatchIndex(text, -1) {
		number, err := strconv.Atoi(text[idx[2]:idx[3]])
		if err != nil {
			continue
		}
		n := number
		sections = append(sections, types.DetectedSection{
			Type:     types.SectionOptionalPackage,
			Number:   &n,
			Name:     packageName(text, idx[1]),
			Selected: DefaultSelected(types.SectionOptionalPackage),
		})
	}

	// The addendum marker is checked independently of, and after, package
	// detection: a page may carry both packages and an addendum.
	if m := patterns.AddendumNumberMarker.FindStringSubmatch(text); m != nil {
		if number, err := strconv.Atoi(m[1]); err == nil {
			n := number
			sections = append(sections, types.DetectedSection{
				Type:     types.SectionAddendum,
				Number:   &n,
				Selected: DefaultSelected(types.SectionAddendum),
			})
		}
	}

	if len(sections) == 0 {
		log.Debugw("No section markers found; assuming original contract page")
		return fallbackSections()
	}
	return sections
}

// fallbackSections is the backward-compatible default: downstream code
// always expects at least one candidate section.
func fallbackSections() []types.DetectedSection {
	return []types.DetectedSection{{
		Type:     types.SectionOriginal,
		Selected: DefaultSelected(types.SectionOriginal),
	}}
}

func hasContractIdentityMarker(text string) bool {
	return patterns.ContractNumberHeader.MatchString(text) ||
		patterns.ProjectInformationHeader.MatchString(text) ||
		patterns.ContractPriceHeader.MatchString(text) ||
		patterns.DescriptionQtyHeader.MatchString(text)
}

// packageName captures a best-effort display name from the text immediately
// following an optional-package marker: the first non-empty line, truncated.
// Any failure to find one degrades silently to an empty name.
func packageName(text string, from int) string {
	if from >= len(text) {
		return ""
	}
	for _, line := range strings.Split(text[from:], "\n") {
		name := strings.TrimSpace(strings.TrimLeft(line, " -"))
		if name == "" {
			continue
		}
		if next := patterns.OptionalPackageMarker.FindStringIndex(line); next != nil && next[0] == 0 {
			// The very next content is another marker; no name here.
			return ""
		}
		if len(name) > sectionNameMaxLen {
			// Back up to a rune boundary so the cut never emits
			// invalid UTF-8.
			cut := sectionNameMaxLen
			for cut > 0 && !utf8.RuneStart(name[cut]) {
				cut--
			}
			name = name[:cut]
		}
		return name
	}
	return ""
}
