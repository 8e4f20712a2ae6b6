package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/starford/pasarela/internal/models"
)

// Accepted keys per canonical field, canonical key first. Later keys are
// spellings found in older catalog files.
var (
	idKeys       = []string{"id"}
	categoryKeys = []string{"category", "type"}
	statusKeys   = []string{"status", "state"}
	hoursKeys    = []string{"hours"}
	priceKeys    = []string{"price"}
	currencyKeys = []string{"currency"}
	imageKeys    = []string{"images", "image", "photos", "photo"}
)

type textField struct {
	keys []string
	set  func(*models.Product, string)
}

var textFields = []textField{
	{[]string{"collection", "line"}, func(p *models.Product, v string) { p.Collection = v }},
	{[]string{"name", "title"}, func(p *models.Product, v string) { p.Name = v }},
	{[]string{"subtitle", "subTitle", "tagline"}, func(p *models.Product, v string) { p.Subtitle = v }},
	{[]string{"materials", "material"}, func(p *models.Product, v string) { p.Materials = v }},
	{[]string{"sizes", "size"}, func(p *models.Product, v string) { p.Sizes = v }},
	{[]string{"technique"}, func(p *models.Product, v string) { p.Technique = v }},
	{[]string{"description", "desc"}, func(p *models.Product, v string) { p.Description = v }},
}

var categoryAliases = map[string]models.Category{
	"women":       models.CategoryWomen,
	"woman":       models.CategoryWomen,
	"womens":      models.CategoryWomen,
	"men":         models.CategoryMen,
	"man":         models.CategoryMen,
	"mens":        models.CategoryMen,
	"accessory":   models.CategoryAccessory,
	"accessories": models.CategoryAccessory,
}

var statusAliases = map[string]models.Status{
	"available":     models.StatusAvailable,
	"made_to_order": models.StatusMadeToOrder,
	"loom":          models.StatusMadeToOrder,
	"archived":      models.StatusArchived,
}

// foldKey reduces an enumeration value to its lookup form: NFKC, trimmed,
// lower case, with spaces and dashes as underscores.
func foldKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
	s = strings.ReplaceAll(s, "'", "")
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
}
