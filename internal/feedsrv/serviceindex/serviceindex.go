// Package serviceindex models the feed's discovery document: a fixed set of
// capability descriptors advertised at /v3/index.json. The registry is
// immutable after construction; per-request URL resolution works on copies.
package serviceindex

import (
	"net/http"
	"strings"

	"github.com/tansive/pkgfeed/internal/common/apperrors"
)

var ErrInvalidConfiguration apperrors.Error = apperrors.New("invalid service index configuration").SetStatusCode(http.StatusInternalServerError)

// Capability names one advertised feed capability.
type Capability string

const (
	PackageBaseAddress   Capability = "PackageBaseAddress"
	PackagePublish       Capability = "PackagePublish"
	RegistrationsBaseUrl Capability = "RegistrationsBaseUrl"
)

// IndexVersion is the protocol version string of the service index itself.
const IndexVersion = "3.0.0"

// supportedVersions fixes the enumerable version set per capability. The
// first entry is the default.
var supportedVersions = map[Capability][]string{
	PackageBaseAddress:   {"3.0.0"},
	PackagePublish:       {"2.0.0"},
	RegistrationsBaseUrl: {"3.6.0"},
}

// TypeTag maps a (capability, version) pair to the protocol type string,
// e.g. "PackagePublish/2.0.0". An empty version selects the capability's
// default. Unknown pairs fail so misconfiguration is caught at startup,
// never at request time.
func TypeTag(c Capability, version string) (string, apperrors.Error) {
	versions, ok := supportedVersions[c]
	if !ok {
		return "", ErrInvalidConfiguration.New("unknown capability: " + string(c))
	}
	if version == "" {
		version = versions[0]
	}
	for _, v := range versions {
		if v == version {
			return string(c) + "/" + v, nil
		}
	}
	return "", ErrInvalidConfiguration.New("unsupported version " + version + " for capability " + string(c))
}

// Resource is one entry of the rendered discovery document. The ID is
// always absolute in a rendered document.
type Resource struct {
	ID      string `json:"@id"`
	Type    string `json:"@type"`
	Comment string `json:"comment,omitempty"`
}

// Descriptor is the configuration-time form of a resource: the location may
// be a path relative to the serving origin.
type Descriptor struct {
	Capability Capability
	Version    string // empty selects the capability default
	Location   string
	Comment    string
}

// Registry holds the configured resource descriptors. Built once at
// startup and shared read-only between requests.
type Registry struct {
	resources []Resource
}

// NewRegistry validates the descriptors and builds the registry.
func NewRegistry(descriptors ...Descriptor) (*Registry, apperrors.Error) {
	resources := make([]Resource, 0, len(descriptors))
	for _, d := range descriptors {
		tag, err := TypeTag(d.Capability, d.Version)
		if err != nil {
			return nil, err
		}
		resources = append(resources, Resource{
			ID:      d.Location,
			Type:    tag,
			Comment: d.Comment,
		})
	}
	return &Registry{resources: resources}, nil
}

// Document is the rendered service index.
type Document struct {
	Version   string     `json:"version"`
	Resources []Resource `json:"resources"`
}

// Render resolves relative resource locations against origin
// (scheme://host) and returns the discovery document. The stored templates
// are never mutated, so concurrent renders against different origins each
// see correctly resolved copies.
func (r *Registry) Render(origin string) Document {
	resources := make([]Resource, len(r.resources))
	copy(resources, r.resources)
	for i := range resources {
		resources[i].ID = resolveLocation(origin, resources[i].ID)
	}
	return Document{
		Version:   IndexVersion,
		Resources: resources,
	}
}

func resolveLocation(origin, location string) string {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	return strings.TrimSuffix(origin, "/") + location
}

// Origin derives scheme://host from an inbound request.
func Origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
