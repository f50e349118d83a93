// Package nupkg reads the embedded .nuspec manifest out of a package
// archive. Only the manifest entry is ever decompressed; the rest of the
// archive is left untouched.
package nupkg

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/tansive/pkgfeed/internal/common/apperrors"
)

const ManifestExtension = ".nuspec"

// Manifest is the package identity extracted from the .nuspec entry.
type Manifest struct {
	ID               string
	Version          string
	TargetFrameworks []string
}

type nuspecDependencyGroup struct {
	TargetFramework string `xml:"targetFramework,attr"`
}

type nuspecDependencies struct {
	Groups []nuspecDependencyGroup `xml:"group"`
}

type nuspecMetadata struct {
	ID           string              `xml:"id"`
	Version      string              `xml:"version"`
	Dependencies *nuspecDependencies `xml:"dependencies"`
}

type nuspecDocument struct {
	XMLName  xml.Name       `xml:"package"`
	Metadata nuspecMetadata `xml:"metadata"`
}

// Inspect parses the manifest of the archive in ra.
func Inspect(ra io.ReaderAt, size int64) (*Manifest, apperrors.Error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, ErrMalformedArchive.New("unable to open package archive").Err(err)
	}
	entry := findManifestEntry(zr)
	if entry == nil {
		return nil, ErrManifestMissing
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, ErrMalformedArchive.New("unable to open package archive").Err(err)
	}
	defer rc.Close()

	var doc nuspecDocument
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, ErrManifestInvalid.New("invalid package manifest").Err(err)
	}
	if doc.Metadata.ID == "" || doc.Metadata.Version == "" || doc.Metadata.Dependencies == nil {
		return nil, ErrManifestInvalid
	}

	frameworks := make([]string, 0, len(doc.Metadata.Dependencies.Groups))
	for _, g := range doc.Metadata.Dependencies.Groups {
		frameworks = append(frameworks, g.TargetFramework)
	}

	return &Manifest{
		ID:               doc.Metadata.ID,
		Version:          doc.Metadata.Version,
		TargetFrameworks: frameworks,
	}, nil
}

// InspectFile inspects an archive stored on disk without materializing it
// into memory.
func InspectFile(f *os.File) (*Manifest, apperrors.Error) {
	info, err := f.Stat()
	if err != nil {
		return nil, ErrMalformedArchive.New("unable to open package archive").Err(err)
	}
	return Inspect(f, info.Size())
}

// OpenManifest returns a reader over the raw manifest entry of the archive
// in ra. The caller closes the returned reader.
func OpenManifest(ra io.ReaderAt, size int64) (io.ReadCloser, apperrors.Error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, ErrMalformedArchive.New("unable to open package archive").Err(err)
	}
	entry := findManifestEntry(zr)
	if entry == nil {
		return nil, ErrManifestMissing
	}
	rc, err := entry.Open()
	if err != nil {
		return nil, ErrMalformedArchive.New("unable to open package archive").Err(err)
	}
	return rc, nil
}

// findManifestEntry locates the single .nuspec entry. Per the packaging
// convention it sits at the archive root.
func findManifestEntry(zr *zip.Reader) *zip.File {
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, ManifestExtension) && !strings.Contains(f.Name, "/") {
			return f
		}
	}
	return nil
}
