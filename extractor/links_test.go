package extractor

import (
	"testing"

	"github.com/AquaBuilt/aqua-built-backend/patterns"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContractLinksFromHTML(t *testing.T) {
	parsed := types.ParsedEmail{
		HTML: `<html><body>
			<p>Your contract is ready:</p>
			<a href="https://l1.prodbx.com/go/view/?35587.426.20251112100816">View Contract</a>
			<a href="https://l1.prodbx.com/go/view/?35587.427.20251113090000">Addendum 1</a>
			<a href="https://l1.prodbx.com/go/view/?35587.428.20251114090000">Another document</a>
		</body></html>`,
	}

	links := ExtractContractLinks(parsed, patterns.DefaultProdbxHost)

	require.NotNil(t, links.OriginalContractURL)
	assert.Equal(t, "https://l1.prodbx.com/go/view/?35587.426.20251112100816", *links.OriginalContractURL)
	assert.Equal(t, []string{
		"https://l1.prodbx.com/go/view/?35587.427.20251113090000",
		"https://l1.prodbx.com/go/view/?35587.428.20251114090000",
	}, links.AddendumURLs)
}

func TestExtractContractLinksAddendumLabelBeatsOrder(t *testing.T) {
	parsed := types.ParsedEmail{
		HTML: `<a href="https://l1.prodbx.com/go/view/?1.1.1">Addendum # 2</a>
			<a href="https://l1.prodbx.com/go/view/?2.2.2">Contract</a>`,
	}

	links := ExtractContractLinks(parsed, patterns.DefaultProdbxHost)

	require.NotNil(t, links.OriginalContractURL)
	assert.Equal(t, "https://l1.prodbx.com/go/view/?2.2.2", *links.OriginalContractURL,
		"a link labelled Addendum is never the original, even when first")
	assert.Equal(t, []string{"https://l1.prodbx.com/go/view/?1.1.1"}, links.AddendumURLs)
}

func TestExtractContractLinksFromText(t *testing.T) {
	parsed := types.ParsedEmail{
		Text: "View your contract: https://l1.prodbx.com/go/view/?9.1.1\n" +
			"Addendum: https://l1.prodbx.com/go/view/?9.2.2\n",
	}

	links := ExtractContractLinks(parsed, patterns.DefaultProdbxHost)

	require.NotNil(t, links.OriginalContractURL)
	assert.Equal(t, "https://l1.prodbx.com/go/view/?9.1.1", *links.OriginalContractURL)
	assert.Equal(t, []string{"https://l1.prodbx.com/go/view/?9.2.2"}, links.AddendumURLs)
}

func TestExtractContractLinksDuplicatesKept(t *testing.T) {
	parsed := types.ParsedEmail{
		Text: "https://l1.prodbx.com/go/view/?1.1.1\nhttps://l1.prodbx.com/go/view/?1.1.1\n",
	}

	links := ExtractContractLinks(parsed, patterns.DefaultProdbxHost)

	require.NotNil(t, links.OriginalContractURL)
	assert.Len(t, links.AddendumURLs, 1, "duplicates are the caller's problem, not ours")
}

func TestExtractContractLinksNothingFound(t *testing.T) {
	parsed := types.ParsedEmail{
		Text: "No links here.",
		HTML: "<p>Still nothing.</p>",
	}

	links := ExtractContractLinks(parsed, patterns.DefaultProdbxHost)

	assert.Nil(t, links.OriginalContractURL)
	assert.Empty(t, links.AddendumURLs)
}

func TestExtractContractLinksWrongHostIgnored(t *testing.T) {
	parsed := types.ParsedEmail{
		Text: "https://phishing.example.com/go/view/?1.1.1",
	}

	links := ExtractContractLinks(parsed, patterns.DefaultProdbxHost)

	assert.Nil(t, links.OriginalContractURL)
	assert.Empty(t, links.AddendumURLs)
}
