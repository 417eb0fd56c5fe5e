package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nanalab/paperscan/internal/model"
)

// ImageAnalyzer checks Markdown image references: targets must be
// absolute local paths pointing at existing files. An optional metadata
// check inspects existing images for EXIF tags that should not ship in
// a publication (GPS coordinates, author and device identifiers).
type ImageAnalyzer struct {
	imagePattern *regexp.Regexp

	// checkEXIF enables the metadata inspection pass. Off by default so
	// that a well-formed local image yields no issues at all.
	checkEXIF bool
}

// ImageOption configures an ImageAnalyzer.
type ImageOption func(*ImageAnalyzer)

// WithEXIFCheck enables EXIF metadata inspection of existing image files.
func WithEXIFCheck(enabled bool) ImageOption {
	return func(a *ImageAnalyzer) {
		a.checkEXIF = enabled
	}
}

// NewImageAnalyzer creates an ImageAnalyzer.
func NewImageAnalyzer(opts ...ImageOption) *ImageAnalyzer {
	a := &ImageAnalyzer{
		imagePattern: regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the report section name.
func (a *ImageAnalyzer) Name() string {
	return model.SectionImages
}

// Analyze validates each image reference. Checks are ordered and the
// first failure wins per image: network link, then relative path, then
// file existence. A reference failing an earlier check produces exactly
// one issue.
func (a *ImageAnalyzer) Analyze(_ context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()

	matches := a.imagePattern.FindAllStringSubmatch(doc.Text, -1)
	for _, m := range matches {
		altText, imgPath := m[1], m[2]

		if strings.HasPrefix(imgPath, "http://") || strings.HasPrefix(imgPath, "https://") {
			finding.AddIssuef("image '%s' uses a network link, use a local absolute path: %s", altText, imgPath)
			continue
		}

		if !filepath.IsAbs(imgPath) {
			finding.AddIssuef("image '%s' uses a relative path, use an absolute path: %s", altText, imgPath)
			continue
		}

		if _, err := os.Stat(imgPath); err != nil {
			finding.AddIssuef("image file does not exist: %s", imgPath)
			continue
		}

		if a.checkEXIF {
			a.inspectMetadata(finding, altText, imgPath)
		}
	}

	finding.ImagesFound = len(matches)
	return finding
}

// sensitiveEXIFTags are metadata tags that identify a person, a device,
// or a location. Publication images should be scrubbed of all of them.
var sensitiveEXIFTags = map[string]string{
	"GPSLatitude":        "GPS coordinates",
	"GPSLongitude":       "GPS coordinates",
	"GPSLatitudeRef":     "GPS coordinates",
	"GPSLongitudeRef":    "GPS coordinates",
	"Artist":             "author identity",
	"CameraOwnerName":    "author identity",
	"Make":               "device identification",
	"Model":              "device identification",
	"SerialNumber":       "device identification",
	"BodySerialNumber":   "device identification",
	"LensSerialNumber":   "device identification",
	"Software":           "editing software",
	"HostComputer":       "editing software",
	"UserComment":        "embedded comment",
	"ImageDescription":   "embedded comment",
	"XPComment":          "embedded comment",
	"OwnerName":          "author identity",
	"ProcessingSoftware": "editing software",
}

// inspectMetadata reads the image and reports sensitive EXIF tags.
// Unreadable files and images without EXIF data are not issues; only
// tags actually present are reported.
func (a *ImageAnalyzer) inspectMetadata(finding *model.Finding, altText, imgPath string) {
	data, err := os.ReadFile(imgPath)
	if err != nil {
		return
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return
	}

	for _, entry := range entries {
		category, sensitive := sensitiveEXIFTags[entry.TagName]
		if !sensitive {
			continue
		}
		finding.AddIssuef("image '%s' carries %s in EXIF metadata (%s): %s",
			altText, category, entry.TagName, imgPath)
	}
}

// Ensure ImageAnalyzer implements Analyzer.
var _ Analyzer = (*ImageAnalyzer)(nil)
