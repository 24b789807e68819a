package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerIDMarker(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Customer #: 35587", "35587"},
		{"Customer ID 35587", "35587"},
		{"CUST NO: AB-1042", "AB-1042"},
		{"customer number:35587", "35587"},
	}

	for _, tt := range tests {
		m := CustomerIDMarker.FindStringSubmatch(tt.line)
		require.NotNil(t, m, tt.line)
		assert.Equal(t, tt.want, m[1], tt.line)
	}

	assert.Nil(t, CustomerIDMarker.FindStringSubmatch("Dear homeowner,"))
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		cell string
		want float64
	}{
		{"$1,234.56", 1234.56},
		{"1234", 1234},
		{"  $ 500.00 ", 500},
		{"(750.00)", -750},
		{"-500", -500},
		{"", 0},
		{"N/A", 0},
		{"$", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMoney(tt.cell), "cell %q", tt.cell)
	}
}

func TestParseMoneyPtrDistinguishesBlank(t *testing.T) {
	assert.Nil(t, ParseMoneyPtr(""))
	assert.Nil(t, ParseMoneyPtr("n/a"))

	v := ParseMoneyPtr("0")
	require.NotNil(t, v)
	assert.Equal(t, float64(0), *v)
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineClass
	}{
		{"maincategory", "POOL CONSTRUCTION", LineMainCategory},
		{"maincategory with digits", "PHASE 2 EXCAVATION", LineMainCategory},
		{"subcategory", "-PLUMBING-", LineSubCategory},
		{"subcategory spaced", " - DECK & COPING - ", LineSubCategory},
		{"item full row", "Gunite shell  1.00  12,500.00  $12,500.00", LineItem},
		{"item amount only", "Permit allowance  $1,500.00", LineItem},
		{"prose", "Thank you for choosing us for your project.", LineNoMatch},
		{"blank", "", LineNoMatch},
		{"currency line is not a heading", "TOTAL  $88,000.00", LineItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLine(tt.line)
			assert.Equal(t, tt.want, got.Class)
		})
	}
}

func TestClassifyLineItemCells(t *testing.T) {
	c := ClassifyLine("Tile & coping  42.00  18.50  $777.00")
	require.Equal(t, LineItem, c.Class)
	require.NotNil(t, c.Item)
	assert.Equal(t, "Tile & coping", c.Item.Description)
	assert.Equal(t, "42.00", c.Item.Qty)
	assert.Equal(t, "18.50", c.Item.Rate)
	assert.Equal(t, "$777.00", c.Item.Amount)
}

func TestDashedHeadingBeatsCaps(t *testing.T) {
	c := ClassifyLine("-OPTIONAL PACKAGE 3-")
	assert.Equal(t, LineSubCategory, c.Class)
	assert.Equal(t, "OPTIONAL PACKAGE 3", c.Heading)
}

func TestSectionMarkers(t *testing.T) {
	m := OptionalPackageMarker.FindStringSubmatch("some text -OPTIONAL PACKAGE 3- more")
	require.NotNil(t, m)
	assert.Equal(t, "3", m[1])

	m = AddendumNumberMarker.FindStringSubmatch("Addendum # : 2")
	require.NotNil(t, m)
	assert.Equal(t, "2", m[1])

	assert.True(t, ContractPriceHeader.MatchString("Total Contract Price $88,000"))
	assert.True(t, ProjectInformationHeader.MatchString("PROJECT INFORMATION"))
	assert.True(t, DescriptionQtyHeader.MatchString("Description Qty Rate Amount"))
}

func TestProdbxLinkPattern(t *testing.T) {
	pat := ProdbxLinkPattern("l1.prodbx.com")

	link := pat.FindString(`see <a href="https://l1.prodbx.com/go/view/?35587.426.20251112100816">here</a>`)
	assert.Equal(t, "https://l1.prodbx.com/go/view/?35587.426.20251112100816", link)

	assert.Empty(t, pat.FindString("https://evil.example.com/go/view/?1.2.3"))
	assert.Empty(t, pat.FindString("https://l1.prodbx.com/other/path?1.2.3"))
}

func TestCityStateZip(t *testing.T) {
	m := CityStateZip.FindStringSubmatch("Scottsdale, AZ 85251")
	require.NotNil(t, m)
	assert.Equal(t, "Scottsdale", m[1])
	assert.Equal(t, "AZ", m[2])
	assert.Equal(t, "85251", m[3])
}
