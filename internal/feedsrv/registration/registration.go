// Package registration renders the protocol's registration index: the
// catalog/page/leaf projection of every stored version of a package. The
// documents are computed per request and never persisted.
package registration

import (
	"fmt"
	"strings"

	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
)

type Catalog struct {
	ID        string `json:"@id"`
	PackageID string `json:"id"`
	Version   string `json:"version"`
}

type Leaf struct {
	ID             string  `json:"@id"`
	CatalogEntry   Catalog `json:"catalogEntry"`
	PackageContent string  `json:"packageContent"`
}

type Page struct {
	ID     string `json:"@id"`
	Count  int    `json:"count"`
	Items  []Leaf `json:"items"`
	Parent string `json:"parent"`
	Lower  string `json:"lower"`
	Upper  string `json:"upper"`
}

type Document struct {
	Count int    `json:"count"`
	Items []Page `json:"items"`
}

// Render builds the registration document for the given package versions.
// origin is scheme://host of the current request and requestPath is the
// path of the registration index being served; both feed into the absolute
// URLs of the document.
//
// Bounds are the lexicographic min and max of the version strings, not a
// semantic ordering ("9" sorts above "10"). All versions land in a single
// page; multi-page registration is a documented limitation.
func Render(origin, requestPath string, packages []*models.Package) Document {
	leaves := make([]Leaf, 0, len(packages))
	for _, p := range packages {
		lowerName := strings.ToLower(p.Name)
		lowerVersion := strings.ToLower(p.Version)
		leaves = append(leaves, Leaf{
			ID: fmt.Sprintf("%s/v3/metadata/%s/%s.json", origin, lowerName, lowerVersion),
			CatalogEntry: Catalog{
				// the catalog id is left empty; clients tolerate the
				// placeholder
				ID:        "",
				PackageID: p.Name,
				Version:   p.Version,
			},
			PackageContent: fmt.Sprintf("%s/v3/package/%s/%s/%s",
				origin, lowerName, lowerVersion, blobstore.PackageFileName(lowerName, lowerVersion)),
		})
	}

	lower, upper := versionBounds(packages)
	currentPath := origin + requestPath
	page := Page{
		ID:     fmt.Sprintf("%s#page/%s/%s", currentPath, lower, upper),
		Count:  len(leaves),
		Items:  leaves,
		Parent: currentPath,
		Lower:  lower,
		Upper:  upper,
	}

	return Document{
		Count: 1,
		Items: []Page{page},
	}
}

func versionBounds(packages []*models.Package) (lower, upper string) {
	for i, p := range packages {
		if i == 0 {
			lower, upper = p.Version, p.Version
			continue
		}
		if p.Version < lower {
			lower = p.Version
		}
		if p.Version > upper {
			upper = p.Version
		}
	}
	return lower, upper
}
