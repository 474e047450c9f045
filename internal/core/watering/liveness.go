package watering

import (
	"github.com/penwyp/go-horti/internal/core/constants"
)

// Classifier decides whether a plant is dead from the time since it was
// effectively last watered.
type Classifier struct {
	threshold int64
	allow     map[string]struct{}
}

// NewClassifier creates a classifier with the default staleness window.
// Identities in allowList are never classified as dead.
func NewClassifier(allowList []string) *Classifier {
	allow := make(map[string]struct{}, len(allowList))
	for _, id := range allowList {
		allow[id] = struct{}{}
	}
	return &Classifier{
		threshold: constants.StalenessSeconds,
		allow:     allow,
	}
}

// IsDead reports whether more than the staleness window has elapsed between
// effective and now.
func (c *Classifier) IsDead(effective, now int64, identity string) bool {
	if _, ok := c.allow[identity]; ok {
		return false
	}
	return now-effective > c.threshold
}
