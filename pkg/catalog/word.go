package catalog

// WordArticle is the article carried by a word.
type WordArticle string

const (
	ArticleNone          WordArticle = ""
	ArticleDeterminative WordArticle = "Determinative"
)

// WordForm is the grammatical number of a word.
type WordForm string

const (
	WordSingular WordForm = "Singular"
	WordDual     WordForm = "Dual"
	WordPlural   WordForm = "Plural"
)

// CategoryColor is the category of color words, which some minigames skip.
const CategoryColor = "Color"

type Word struct {
	ID              string      `json:"id"`
	Active          bool        `json:"active"`
	Kind            string      `json:"kind"`
	Category        string      `json:"category"`
	Form            WordForm    `json:"form"`
	Article         WordArticle `json:"article"`
	SunMoon         SunMoon     `json:"sun_moon"`
	LinkedWord      string      `json:"linked_word"`
	Arabic          string      `json:"arabic"`
	ArabicNoShaddah string      `json:"arabic_no_shaddah"`
	Value           string      `json:"value"`
	// Letters is the authored letter list, kept for reference; the computed
	// list comes from segmenting Arabic.
	Letters    []string `json:"letters"`
	Drawing    string   `json:"drawing"`
	Complexity float64  `json:"complexity"`
}

func (w *Word) DataID() string               { return w.ID }
func (w *Word) IntrinsicDifficulty() float64 { return w.Complexity }
func (w *Word) String() string               { return w.ID + ": " + w.Arabic }

func (w *Word) HasDrawing() bool { return w.Drawing != "" }

// IsSingular treats an unset form as singular.
func (w *Word) IsSingular() bool { return w.Form == "" || w.Form == WordSingular }

// DrawingGlyph decodes the hex drawing codepoint into its font glyph.
func (w *Word) DrawingGlyph() string {
	r, ok := HexToRune(w.Drawing)
	if !ok {
		return ""
	}
	return string(r)
}

type Phrase struct {
	ID         string   `json:"id"`
	Active     bool     `json:"active"`
	English    string   `json:"english"`
	Arabic     string   `json:"arabic"`
	Category   string   `json:"category"`
	Linked     string   `json:"linked"`
	Words      []string `json:"words"`
	Answers    []string `json:"answers"`
	Complexity float64  `json:"complexity"`
}

func (p *Phrase) DataID() string               { return p.ID }
func (p *Phrase) IntrinsicDifficulty() float64 { return p.Complexity }
func (p *Phrase) String() string               { return p.ID + ": " + p.Arabic }
