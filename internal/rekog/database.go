package rekog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is looked up in the data directory and, when present, replaces
// DefaultReferences.
const ManifestFile = "references.yaml"

// ReferenceEntry maps a reference image to the token that replaces matching URLs.
type ReferenceEntry struct {
	Name        string  `yaml:"name"`
	Path        string  `yaml:"path"`
	Replacement string  `yaml:"replacement"`
	Threshold   float64 `yaml:"threshold"`
}

func (e ReferenceEntry) validate() error {
	switch {
	case e.Name == "":
		return errors.New("missing name")
	case e.Path == "":
		return errors.New("missing path")
	case e.Replacement == "":
		return errors.New("missing replacement")
	case e.Threshold < 0:
		return fmt.Errorf("negative threshold %v", e.Threshold)
	}
	return nil
}

// DefaultReferences is used when the data directory has no manifest.
var DefaultReferences = []ReferenceEntry{
	{Name: "facebook_thumbsup", Path: "facebook_thumbsup.png", Replacement: ":thumbsup:", Threshold: 10},
}

type manifest struct {
	References []ReferenceEntry `yaml:"references"`
}

// LoadManifest reads the reference list from dataDir. A missing manifest yields
// DefaultReferences.
func LoadManifest(dataDir string) ([]ReferenceEntry, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return append([]ReferenceEntry(nil), DefaultReferences...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", ManifestFile, err)
	}
	return m.References, nil
}

// Reference is a loaded entry with its decoded image.
type Reference struct {
	ReferenceEntry
	Image *Image
}

// Database is the ordered, read-only list of loaded references. Order is match
// priority.
type Database struct {
	refs   []Reference
	failed []error
}

// NewDatabase decodes every entry's image under dataDir once. Entries that fail
// are reported to sink and left out.
func NewDatabase(dataDir string, entries []ReferenceEntry, decoder Decoder, sink DebugSink) *Database {
	if sink == nil {
		sink = nopSink{}
	}
	db := &Database{}
	for _, entry := range entries {
		ref, err := loadReference(dataDir, entry, decoder)
		if err != nil {
			db.failed = append(db.failed, err)
			sink.Debug(err.Error())
			continue
		}
		db.refs = append(db.refs, ref)
	}
	return db
}

// NewDatabaseFromImages builds a database from already decoded images.
func NewDatabaseFromImages(refs ...Reference) *Database {
	return &Database{refs: refs}
}

func loadReference(dataDir string, entry ReferenceEntry, decoder Decoder) (Reference, error) {
	loadErr := func(err error) error {
		return &ReferenceLoadError{Name: entry.Name, Path: entry.Path, Err: err}
	}
	if err := entry.validate(); err != nil {
		return Reference{}, loadErr(err)
	}
	if !filepath.IsLocal(entry.Path) {
		return Reference{}, loadErr(errors.New("path escapes data directory"))
	}

	data, err := os.ReadFile(filepath.Join(dataDir, entry.Path))
	if err != nil {
		return Reference{}, loadErr(err)
	}
	img, err := decoder.Decode(data)
	if err != nil {
		return Reference{}, loadErr(err)
	}
	return Reference{ReferenceEntry: entry, Image: img}, nil
}

// Entries returns the usable references in priority order.
func (db *Database) Entries() []Reference {
	return db.refs
}

// Failed returns the load errors of the entries that were left out.
func (db *Database) Failed() []error {
	return db.failed
}

func (db *Database) Len() int {
	return len(db.refs)
}
