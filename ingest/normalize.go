package ingest

import "regexp"

// Spaltennamen der Eingabedateien, wie vom Studienprozess geliefert.
const (
	colArticleLabel = "duos_article_label"
	colTitle        = "title"
	colAuthorList   = "author_list"
	colDatasetName  = "name"
	colDatasetLabel = "duos_dataset_label"
	colAuthorID     = "author_id"
	colEmailAddress = "email_address"
)

// Autorenlisten sind mit Komma (optional je ein Whitespace daneben) oder
// mit " and " getrennt.
var authorListSep = regexp.MustCompile(`\s?,\s?|\sand\s`)

// SplitAuthorList zerlegt das author_list-Feld in die geordnete Namensfolge.
// Leere Tokens (etwa durch ein abschließendes Komma) werden nicht gefiltert,
// sondern weitergereicht und erst im Resolver beanstandet.
func SplitAuthorList(list string) []string {
	return authorListSep.Split(list, -1)
}

// ArticleUnit ist die normalisierte Einheit eines articles-Datensatzes:
// ein Artikel plus seine geordnete Autorenliste.
type ArticleUnit struct {
	Title   string
	Label   string
	Authors []string
}

// ReferenceUnit ist die normalisierte Einheit eines references-Datensatzes:
// natürliche Schlüssel für Datensatz und zitierenden Artikel.
type ReferenceUnit struct {
	DatasetLabel string
	DatasetName  string
	ArticleLabel string
}

// EmailUnit ist die normalisierte Einheit eines emails-Datensatzes. Der
// AuthorKey ist der extern gelieferte Autoren-Schlüssel, wie er in der
// Datei steht.
type EmailUnit struct {
	AuthorKey string
	Email     string
}

// NormalizeArticle entflacht eine validierte articles-Zeile. Reine
// Transformation, kein Store-Zugriff.
func NormalizeArticle(row Row) ArticleUnit {
	return ArticleUnit{
		Title:   row.String(colTitle),
		Label:   row.String(colArticleLabel),
		Authors: SplitAuthorList(row.String(colAuthorList)),
	}
}

// NormalizeReference entflacht eine validierte references-Zeile.
func NormalizeReference(row Row) ReferenceUnit {
	return ReferenceUnit{
		DatasetLabel: row.String(colDatasetLabel),
		DatasetName:  row.String(colDatasetName),
		ArticleLabel: row.String(colArticleLabel),
	}
}

// NormalizeEmail entflacht eine validierte emails-Zeile.
func NormalizeEmail(row Row) EmailUnit {
	return EmailUnit{
		AuthorKey: row.String(colAuthorID),
		Email:     row.String(colEmailAddress),
	}
}
