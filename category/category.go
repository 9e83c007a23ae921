// Package category maps transaction descriptions to category names.
// Classification is an ordered list of strategies; the first one that
// produces a result wins. A keyword scan runs first, the remote model
// second, and anything left falls through to "Otros".
package category

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"finanzas/api/logger"
	"finanzas/api/models"

	"go.uber.org/zap"
)

// Result is one classification outcome.
type Result struct {
	Category    string
	Subcategory string
}

// Request carries everything a strategy may need.
type Request struct {
	UserID      string
	Description string
	Categories  []models.Category
}

// Strategy returns nil (not an error) when it has no opinion.
type Strategy interface {
	Classify(ctx context.Context, req Request) (*Result, error)
}

// Remote is the external text-classification service.
type Remote interface {
	ClassifyCategory(ctx context.Context, description string, categories []string) (category, subcategory string, err error)
}

// Learner persists keywords discovered by a successful remote
// classification into the user's scope.
type Learner func(ctx context.Context, userID, name, categoryType string, keywords []string) error

// Classifier runs the strategy chain.
type Classifier struct {
	strategies []Strategy
}

// New builds the standard chain. remote may be nil, leaving keyword
// matching as the only strategy before the fallback.
func New(remote Remote, learn Learner) *Classifier {
	strategies := []Strategy{keywordStrategy{}}
	if remote != nil {
		strategies = append(strategies, &remoteStrategy{remote: remote, learn: learn})
	}
	return &Classifier{strategies: strategies}
}

// Categorize never fails: a strategy error is a miss, and a full miss
// is "Otros". Transaction creation must not depend on the classifier
// being reachable.
func (c *Classifier) Categorize(ctx context.Context, userID, description string, categories []models.Category) Result {
	req := Request{UserID: userID, Description: description, Categories: categories}
	for _, s := range c.strategies {
		result, err := s.Classify(ctx, req)
		if err != nil {
			logger.Get().Warn("classification strategy failed",
				zap.String("user_id", userID),
				zap.Error(err))
			continue
		}
		if result != nil {
			return *result
		}
	}
	return Result{Category: models.FallbackCategory}
}

// keywordStrategy scans each category's keyword list for a substring
// hit in the description. Within a category the keywords are tried
// longest first so "gasolina" beats "gas"; across categories the
// enumeration order of the set breaks ties.
type keywordStrategy struct{}

func (keywordStrategy) Classify(_ context.Context, req Request) (*Result, error) {
	desc := strings.ToLower(req.Description)
	for _, cat := range req.Categories {
		keywords := append([]string(nil), cat.Keywords...)
		sort.SliceStable(keywords, func(i, j int) bool {
			return len(keywords[i]) > len(keywords[j])
		})
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(desc, strings.ToLower(kw)) {
				return &Result{Category: cat.Name}, nil
			}
		}
	}
	return nil, nil
}

type remoteStrategy struct {
	remote Remote
	learn  Learner
}

func (s *remoteStrategy) Classify(ctx context.Context, req Request) (*Result, error) {
	names := make([]string, 0, len(req.Categories))
	for _, cat := range req.Categories {
		names = append(names, cat.Name)
	}

	name, subcategory, err := s.remote.ClassifyCategory(ctx, req.Description, names)
	if err != nil {
		return nil, err
	}

	matched := findByName(req.Categories, name)
	if matched == nil {
		// Off-list answer is coerced to the fallback, and nothing is
		// learned from a guess.
		return &Result{Category: models.FallbackCategory}, nil
	}

	if s.learn != nil {
		words := LearnableWords(req.Description)
		if err := s.learn(ctx, req.UserID, matched.Name, matched.Type, words); err != nil {
			logger.Get().Warn("keyword learning failed",
				zap.String("user_id", req.UserID),
				zap.String("category", matched.Name),
				zap.Error(err))
		}
	}

	return &Result{Category: matched.Name, Subcategory: subcategory}, nil
}

func findByName(categories []models.Category, name string) *models.Category {
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i]
		}
	}
	return nil
}

var numericWord = regexp.MustCompile(`^[\d.,$]+$`)

// LearnableWords extracts the description words worth feeding back into
// a keyword list: longer than 3 characters and not purely numeric.
func LearnableWords(description string) []string {
	seen := make(map[string]bool)
	words := []string{}
	for _, w := range strings.Fields(strings.ToLower(description)) {
		w = strings.Trim(w, `.,;:!?"()`)
		if len([]rune(w)) <= 3 || numericWord.MatchString(w) || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}
