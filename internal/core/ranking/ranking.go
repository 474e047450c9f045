package ranking

import (
	"sort"

	"github.com/penwyp/go-horti/internal/core/model"
)

// Rank returns the records ordered by effective last-watered instant, most
// recent first. Records with equal instants keep their input order. The
// input slice is not modified.
func Rank(records []*model.PlantRecord) []*model.PlantRecord {
	ranked := make([]*model.PlantRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectiveLastWatered > ranked[j].EffectiveLastWatered
	})
	return ranked
}
