package registration

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
)

func testPackages(versions ...string) []*models.Package {
	owner := uuid.New()
	pkgs := make([]*models.Package, 0, len(versions))
	for _, v := range versions {
		pkgs = append(pkgs, &models.Package{
			Name:         "Contoso.Utils",
			Version:      v,
			UploadUserID: owner,
		})
	}
	return pkgs
}

func TestRenderSinglePage(t *testing.T) {
	doc := Render("https://feed.example.com", "/v3/metadata/contoso.utils/index.json",
		testPackages("1.0.0", "2.0.0", "1.5.0"))

	assert.Equal(t, 1, doc.Count)
	require.Len(t, doc.Items, 1)

	page := doc.Items[0]
	assert.Equal(t, "1.0.0", page.Lower)
	assert.Equal(t, "2.0.0", page.Upper)
	assert.Equal(t, 3, page.Count)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "https://feed.example.com/v3/metadata/contoso.utils/index.json", page.Parent)
	assert.Equal(t, "https://feed.example.com/v3/metadata/contoso.utils/index.json#page/1.0.0/2.0.0", page.ID)
}

func TestRenderLeafURLs(t *testing.T) {
	doc := Render("http://localhost:8190", "/v3/metadata/contoso.utils/index.json",
		testPackages("1.0.0"))

	leaf := doc.Items[0].Items[0]
	assert.Equal(t, "http://localhost:8190/v3/metadata/contoso.utils/1.0.0.json", leaf.ID)
	assert.Equal(t, "http://localhost:8190/v3/package/contoso.utils/1.0.0/contoso.utils.1.0.0.nupkg", leaf.PackageContent)
	// stored casing is preserved in the catalog entry, and its @id stays an
	// empty placeholder
	assert.Equal(t, "Contoso.Utils", leaf.CatalogEntry.PackageID)
	assert.Equal(t, "1.0.0", leaf.CatalogEntry.Version)
	assert.Equal(t, "", leaf.CatalogEntry.ID)
}

func TestRenderLexicographicBounds(t *testing.T) {
	// lexicographic, not semantic: "9" sorts above "10"
	doc := Render("http://h", "/v3/metadata/p/index.json", testPackages("9.0.0", "10.0.0"))
	page := doc.Items[0]
	assert.Equal(t, "10.0.0", page.Lower)
	assert.Equal(t, "9.0.0", page.Upper)
}
