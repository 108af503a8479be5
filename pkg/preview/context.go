package preview

import (
	"regexp"
	"slices"
	"strings"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/mockdata"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

// BuildContext assembles the template data for a local render: the mock
// context for req.Preset (or req.Data), resource drops replacing the raw
// attribute bags, and the section object.
func BuildContext(req Request, options ...drops.SettingsOption) mockdata.Context {
	base := req.Data
	if base == nil {
		base = mockdata.ContextFromPreset(req.Preset)
	}

	data := make(mockdata.Context, len(base)+4)
	for key, value := range base {
		data[key] = value
	}

	collectionAttrs := attributes(base["collection"])
	data["shop"] = drops.NewShop(attributes(base["shop"]))
	if req.Shop != nil {
		data["shop"] = req.Shop
	}
	setDrop(data, "product", drops.NewProduct(attributes(base["product"])), req.Product)
	setDrop(data, "collection", drops.NewCollection(collectionAttrs), req.Collection)
	setDrop(data, "article", drops.NewArticle(attributes(base["article"])), req.Article)

	var extra []drops.Attributes
	for _, item := range asList(base["collections"]) {
		if attrs := attributes(item); attrs != nil {
			extra = append(extra, attrs)
		}
	}
	data["collections"] = drops.NewCollections(collectionAttrs, extra...)

	sectionID := req.SectionID
	if sectionID == "" {
		sectionID = DefaultSectionID
	}
	blocks := make([]any, 0, len(req.Blocks))
	for _, block := range req.Blocks {
		blocks = append(blocks, map[string]any{
			"id":                 block.ID,
			"type":               block.Type,
			"settings":           drops.NewSectionSettings(block.Settings, nil, options...),
			"shopify_attributes": "",
		})
	}
	data["section"] = map[string]any{
		"id":       sectionID,
		"settings": drops.NewSectionSettings(req.Settings, req.Resources, options...),
		"blocks":   blocks,
	}
	return data
}

// setDrop stores selected when set, else fallback. Absent resources leave
// the key unset so templates see nil.
func setDrop[T interface {
	comparable
	drops.Drop
}](data mockdata.Context, key string, fallback, selected T) {
	var zero T
	switch {
	case selected != zero:
		data[key] = selected
	case fallback != zero:
		data[key] = fallback
	default:
		delete(data, key)
	}
}

func attributes(v any) drops.Attributes {
	switch t := v.(type) {
	case drops.Attributes:
		return t
	case map[string]any:
		return drops.Attributes(t)
	}
	return nil
}

func asList(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	return nil
}

// ResourceSummary describes the resources selected for a request.
func ResourceSummary(req Request) string {
	var parts []string
	if req.Product != nil {
		parts = append(parts, "Product: "+req.Product.Title())
	}
	if req.Collection != nil {
		parts = append(parts, "Collection: "+req.Collection.Title())
	}
	if req.Article != nil {
		parts = append(parts, "Article: "+req.Article.Title())
	}
	if len(parts) == 0 {
		return "Using default shop data"
	}
	return strings.Join(parts, ", ")
}

// ResourceNeeds lists the storefront objects a section reads.
type ResourceNeeds struct {
	Product    bool
	Collection bool
	Article    bool
	Blog       bool
	Cart       bool
}

var (
	productPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\{\{-?\s*product\.`),
		regexp.MustCompile(`(?i)\{%-?\s*for\s+\w+\s+in\s+product\.`),
		regexp.MustCompile(`(?i)\{%-?\s*for\s+product\s+in\s+`),
	}
	collectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\{\{-?\s*collection\.`),
		regexp.MustCompile(`(?i)\{%-?\s*for\s+\w+\s+in\s+collection\.products`),
		regexp.MustCompile(`(?i)collections\[`),
		regexp.MustCompile(`(?i)collections\.\w+`),
	}
	articlePattern = regexp.MustCompile(`(?i)\{\{-?\s*article\.`)
	blogPattern    = regexp.MustCompile(`(?i)\{\{-?\s*blog\.`)
	cartPattern    = regexp.MustCompile(`(?i)\{\{-?\s*cart\.`)
)

// DetectResources scans section code for the storefront objects it uses.
func DetectResources(code string) ResourceNeeds {
	if code == "" {
		return ResourceNeeds{}
	}
	matchAny := func(patterns []*regexp.Regexp) bool {
		return slices.ContainsFunc(patterns, func(p *regexp.Regexp) bool { return p.MatchString(code) })
	}
	return ResourceNeeds{
		Product:    matchAny(productPatterns),
		Collection: matchAny(collectionPatterns),
		Article:    articlePattern.MatchString(code),
		Blog:       blogPattern.MatchString(code),
		Cart:       cartPattern.MatchString(code),
	}
}

// Summary lists the detected resources for display.
func (n ResourceNeeds) Summary() string {
	var names []string
	for _, r := range []struct {
		name string
		on   bool
	}{
		{"Product", n.Product},
		{"Collection", n.Collection},
		{"Article", n.Article},
		{"Blog", n.Blog},
		{"Cart", n.Cart},
	} {
		if r.on {
			names = append(names, r.name)
		}
	}
	if len(names) == 0 {
		return "No specific resources detected"
	}
	return "Detected: " + strings.Join(names, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

var _ drops.PrimitiveSettings = (*schema.State)(nil)
