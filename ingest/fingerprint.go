package ingest

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	hashids "github.com/speps/go-hashids/v2"
)

// writesHasher kodiert Writes-Kanten mit demselben Salt wie der historische
// Studien-Loader, damit bestehende Hashes vergleichbar bleiben.
var writesHasher = mustHasher("duos")

func mustHasher(salt string) *hashids.HashID {
	hd := hashids.NewData()
	hd.Salt = salt
	h, err := hashids.NewWithData(hd)
	if err != nil {
		panic(err)
	}
	return h
}

// WritesHash kodiert (article_id, author_id, article_id*author_id); drei
// Zahlen ergeben eine brauchbare Hash-Länge.
func WritesHash(articleID, authorID uint) string {
	a, b := int(articleID), int(authorID)
	s, err := writesHasher.Encode([]int{a, b, a * b})
	if err != nil {
		// Encode schlägt nur bei negativen Zahlen fehl; IDs sind positiv.
		return ""
	}
	return s
}

// ReferenceTag berechnet den Integritäts-Fingerprint einer Referenz aus den
// natürlichen Schlüsseln beider Endpunkte. Stabil über Läufe hinweg, damit
// wiederholte Ladungen derselben logischen Referenz erkennbar sind.
func ReferenceTag(articleLabel, datasetLabel string) string {
	sum := xxhash.Sum64String(articleLabel + "\x1f" + datasetLabel)
	return fmt.Sprintf("%016x", sum)
}
