package usecase

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/procurelens/backend/internal/domain"
)

// ClassifierService maps product names onto the category taxonomy using
// ordered keyword rules. One Aho-Corasick matcher is built per category at
// construction; categories are scanned in declared order so that when a name
// matches keywords from several categories, the earliest one wins. The
// taxonomy is never mutated after construction, so a single service is safe
// for unlimited concurrent readers.
type ClassifierService struct {
	categories []domain.Category
	matchers   []*ahocorasick.Matcher
	subRules   []domain.SubcategoryRule
}

// NewClassifierService builds a classifier over the default grocery/FMCG
// taxonomy.
func NewClassifierService() *ClassifierService {
	return NewClassifierServiceWith(domain.DefaultTaxonomy(), domain.DefaultSubcategoryRules())
}

// NewClassifierServiceWith builds a classifier over a custom taxonomy.
// Category order is significant.
func NewClassifierServiceWith(categories []domain.Category, subRules []domain.SubcategoryRule) *ClassifierService {
	matchers := make([]*ahocorasick.Matcher, len(categories))
	for i, cat := range categories {
		keywords := make([]string, 0, len(cat.Keywords))
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		matchers[i] = ahocorasick.NewStringMatcher(keywords)
	}

	return &ClassifierService{
		categories: categories,
		matchers:   matchers,
		subRules:   subRules,
	}
}

// Classify returns (category, subcategory) for a product name. Pure function
// of the input text and the static rule table: identical input always yields
// identical output. Names matching no category keyword classify to the
// ("Other Products", "Uncategorized") sentinel, which is a valid terminal
// classification, not an error.
func (s *ClassifierService) Classify(productName string) (string, string) {
	name := strings.ToLower(strings.TrimSpace(productName))
	if name == "" {
		return domain.CategoryOther, domain.SubcategoryUncategorized
	}

	for i, matcher := range s.matchers {
		if len(matcher.Match([]byte(name))) == 0 {
			continue
		}
		cat := s.categories[i]
		return cat.Name, s.selectSubcategory(name, cat)
	}

	return domain.CategoryOther, domain.SubcategoryUncategorized
}

// selectSubcategory walks the ordered subcategory rule table; first rule
// whose keyword occurs in the name and whose subcategory belongs to the
// matched category wins. Falls back to the category's first declared
// subcategory, then to the generic default.
func (s *ClassifierService) selectSubcategory(nameLower string, cat domain.Category) string {
	for _, rule := range s.subRules {
		if !strings.Contains(nameLower, rule.Keyword) {
			continue
		}
		for _, sub := range cat.Subcategories {
			if sub == rule.Subcategory {
				return sub
			}
		}
	}

	if len(cat.Subcategories) > 0 {
		return cat.Subcategories[0]
	}
	return domain.SubcategoryGeneral
}

// Enrich returns a fresh slice in which offers missing a category or
// subcategory are classified from their product name. The input snapshot is
// never mutated.
func (s *ClassifierService) Enrich(offers []domain.Offer) []domain.Offer {
	out := make([]domain.Offer, len(offers))
	for i, o := range offers {
		if o.Category == "" || o.Subcategory == "" {
			cat, sub := s.Classify(o.ProductName)
			if o.Category == "" {
				o.Category = cat
			}
			if o.Subcategory == "" {
				o.Subcategory = sub
			}
		}
		out[i] = o
	}
	return out
}

// Categories returns category names in taxonomy order.
func (s *ClassifierService) Categories() []string {
	names := make([]string, len(s.categories))
	for i, cat := range s.categories {
		names[i] = cat.Name
	}
	return names
}

// BrandsFor returns the reference brands declared for a category. Brands are
// informational only and play no part in classification.
func (s *ClassifierService) BrandsFor(category string) []string {
	for _, cat := range s.categories {
		if cat.Name == category {
			return cat.PopularBrands
		}
	}
	return nil
}
