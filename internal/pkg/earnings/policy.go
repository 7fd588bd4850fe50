package earnings

import "github.com/PennitApp/Pennit/app/models"

// PointsPolicy maps one read of a work to earned points. Two policies are
// deliberately kept side by side: the writer dashboard weighs reads by
// category while the single-work analytics view counts a flat point per
// read. The product has not reconciled the two rules, so both stay named
// and configurable instead of one silently winning.
type PointsPolicy interface {
	Name() string
	PointsPerRead(category string) uint64
}

// Default category weights (points per read).
const (
	DefaultPoemWeight       = 1
	DefaultShortStoryWeight = 3
	DefaultNovelWeight      = 5
)

// CategoryWeightedPolicy weighs each read by the work's category. Used by
// the writer earnings dashboard.
type CategoryWeightedPolicy struct {
	PoemWeight       uint64
	ShortStoryWeight uint64
	NovelWeight      uint64
}

// NewCategoryWeightedPolicy returns the policy with the default weights.
func NewCategoryWeightedPolicy() CategoryWeightedPolicy {
	return CategoryWeightedPolicy{
		PoemWeight:       DefaultPoemWeight,
		ShortStoryWeight: DefaultShortStoryWeight,
		NovelWeight:      DefaultNovelWeight,
	}
}

func (CategoryWeightedPolicy) Name() string { return "category_weighted" }

func (p CategoryWeightedPolicy) PointsPerRead(category string) uint64 {
	switch category {
	case models.CategoryPoem:
		return p.PoemWeight
	case models.CategoryShortStory:
		return p.ShortStoryWeight
	case models.CategoryNovel:
		return p.NovelWeight
	}
	return 0
}

// FlatPerReadPolicy counts the same points for every read regardless of
// category. Used by the single-work analytics view.
type FlatPerReadPolicy struct {
	PerRead uint64
}

// NewFlatPerReadPolicy returns the flat policy at one point per read.
func NewFlatPerReadPolicy() FlatPerReadPolicy {
	return FlatPerReadPolicy{PerRead: 1}
}

func (FlatPerReadPolicy) Name() string { return "flat_per_read" }

func (p FlatPerReadPolicy) PointsPerRead(string) uint64 { return p.PerRead }
